package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
	ErrExtractionTimeout    = errors.New("extraction timed out")
	ErrEmptyDocument        = errors.New("no text extracted")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrUnrecognizedCategory = errors.New("unrecognized category")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
