package domain

import "errors"

// Error kinds surfaced to the chat layer. Callers wrap these with
// fmt.Errorf("...: %w", ...) and the HTTP boundary maps them with errors.Is.
var (
	ErrNotFound        = errors.New("player not found")
	ErrConflict        = errors.New("already registered")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUpstream        = errors.New("upstream provider error")
)
