package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

// maxErrorBody bounds how much of a failed response body is kept for the
// error message.
const maxErrorBody = 2048

var errEmptyReply = errors.New("model returned an empty reply")

// HTTPStatusError carries a non-2xx chat completions response.
type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("openai %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("openai %s status: %s: %s", e.Operation, e.Status, e.Body)
}

// isModelFailure decides which errors count against the circuit breaker.
// Caller cancellation and client-side 4xx responses are exempt; outages
// and transport faults trip it.
func isModelFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return isOutageHTTPStatus(statusErr.StatusCode)
	}
	return true
}

// wrapModelError maps transport failures onto the domain error kinds.
// Content-level parse and schema failures are wrapped at the call sites;
// everything that goes wrong before a reply arrives is an upstream fault,
// timeouts included.
func wrapModelError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if domain.IsKind(err, domain.ErrUpstreamUnavailable) || domain.IsKind(err, domain.ErrMalformedModelOutput) {
		return err
	}
	return domain.WrapError(domain.ErrUpstreamUnavailable, operation, err)
}

func isOutageHTTPStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
