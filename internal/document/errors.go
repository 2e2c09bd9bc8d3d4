package document

import "errors"

// Composition errors
var (
	// ErrValidation marks missing or malformed required input, e.g. a
	// programme without a title.
	ErrValidation = errors.New("document input validation failed")
)
