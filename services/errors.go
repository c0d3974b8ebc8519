package services

import "errors"

// Error taxonomy of the core. Everything here is recoverable: the
// operator corrects the input or retries by hand, nothing auto-retries.
var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrBadState           = errors.New("invalid state")
)
