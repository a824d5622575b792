package services

import "errors"

// Sentinel errors handlers translate to HTTP statuses. Services wrap these
// with context; handlers are the only place user-facing messages are built.
var (
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("forbidden")
	ErrNoSelection = errors.New("no parent row selected")
)
