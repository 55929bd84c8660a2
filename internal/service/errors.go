package service

import "errors"

// Typed outcomes for everything that can go wrong inside the core. Handlers
// map these to status codes with errors.Is and perform no business logic of
// their own. All are recoverable at the request boundary.
var (
	ErrDuplicateAccount   = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAbsentSession      = errors.New("no active session")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrBlobMissing        = errors.New("stored content missing")
	ErrStorageFailure     = errors.New("storage failure")
)
