package domain

import "errors"

// Sentinel errors for domain outcomes - use with errors.Is()
var (
	// ErrNotFound covers both a missing entity and an entity owned by a
	// different user. The two cases are deliberately indistinguishable so
	// that existence is never disclosed to a non-owner.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates input that violates field constraints.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a duplicate unique field.
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized indicates a missing or invalid credential at the boundary.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorage indicates the backend was unavailable or a transaction
	// failed. Callers may retry with backoff.
	ErrStorage = errors.New("storage failure")
)

// ConflictError represents a duplicate-resource conflict with details about
// the existing resource.
type ConflictError struct {
	Message      string
	ResourceType string // "folder" or "task"
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
