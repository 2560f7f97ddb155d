package core

import (
	"errors"
)

// Domain errors - centralized error definitions
var (
	ErrInvalidRule      = errors.New("invalid rule definition")
	ErrMissingDimension = errors.New("missing scoring dimension")
)

// IsValidationError reports whether err is a caller error rather than an
// internal failure; the HTTP layer maps these to 400 responses.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRule) ||
		errors.Is(err, ErrMissingDimension)
}
