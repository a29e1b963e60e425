package models

import "errors"

// Failure categories surfaced by the stores. Callers match with errors.Is
// and handlers map them onto HTTP statuses.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateValue   = errors.New("duplicate value")
	ErrInUse            = errors.New("in use")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidReference = errors.New("invalid reference")
)
