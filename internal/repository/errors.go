package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when no task matches the (id, owner)
	// pair. A task owned by someone else is indistinguishable from an
	// absent one.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound is returned when the subject has no local user row
	ErrUserNotFound = errors.New("user not found")
)
