package llamaparse

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "llamaparse status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("llamaparse %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("llamaparse %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

// isParseFailure keeps caller-driven cancellations and deterministic 4xx
// responses from tripping the breaker; outages and 5xx responses count.
func isParseFailure(err error) bool {
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

// wrapParseError maps transport failures onto the domain error kinds the
// endpoint layer translates into status codes.
func wrapParseError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if domain.IsKind(err, domain.ErrEmptyDocument) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrExtractionTimeout, operation, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.WrapError(domain.ErrExtractionTimeout, operation, err)
	}
	return domain.WrapError(domain.ErrUpstreamUnavailable, operation, err)
}

func isOutageHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return statusCode >= 500
	}
}
