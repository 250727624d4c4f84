package user

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials covers both an unknown email and a password
	// mismatch, so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
