package task

import "errors"

// Validation and identity errors. Validation errors are reported to the
// caller before any store mutation is attempted.
var (
	ErrEmptyTitle = errors.New("title cannot be empty")
	ErrEmptyDate  = errors.New("due date cannot be empty")
	ErrBadDate    = errors.New("due date must be YYYY-MM-DD")
	ErrBadTime    = errors.New("time must be HH:MM")
	ErrNoIdentity = errors.New("no signed-in identity")
)
