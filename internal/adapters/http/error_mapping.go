package httpadapter

import (
	"net/http"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrExtractionTimeout):
		return http.StatusGatewayTimeout
	case domain.IsKind(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrMalformedModelOutput):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorType names the failure class in error bodies, mirroring the kinds
// the callers branch on.
func errorType(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return "validation"
	case domain.IsKind(err, domain.ErrEmptyDocument):
		return "extraction_failed"
	case domain.IsKind(err, domain.ErrExtractionTimeout):
		return "timeout"
	case domain.IsKind(err, domain.ErrUpstreamUnavailable):
		return "upstream_error"
	case domain.IsKind(err, domain.ErrMalformedModelOutput):
		return "classification_error"
	default:
		return "internal_error"
	}
}
