package domain

import "errors"

// Error kinds surfaced by the engine. Callers match with errors.Is; the HTTP
// layer maps them to status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("report not found")
	ErrNotGenerated = errors.New("report is not generated")
)
