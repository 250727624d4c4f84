package course

import "errors"

var (
	ErrNotFound = errors.New("course not found")
	// ErrNotOwner means the course exists but belongs to another user.
	ErrNotOwner = errors.New("course is owned by another user")
)
