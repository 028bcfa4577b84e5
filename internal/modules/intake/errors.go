package intake

import "pixelcraft/internal/pkg/validator"

// ValidationFailedError is the only error SubmitQuote surfaces: once input is
// valid, infrastructure trouble degrades into the backup path instead of
// failing the caller.
type ValidationFailedError struct {
	Details validator.Errors
}

func (e *ValidationFailedError) Error() string { return "validation failed" }
