package database

import "errors"

var (
	// ErrNotFound is returned by writers when the target row does not
	// exist or is owned by a different user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("username already exists")
)
