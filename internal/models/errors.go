package models

import "errors"

// Sentinel errors for the service error taxonomy.
// Repositories and services wrap these with fmt.Errorf("%w: ...") so handlers
// can map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique field (email, phone, name) is already taken.
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized is returned on bad credentials or a missing/invalid/expired token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a role gate fails or a protected role is mutated.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is returned when input fails schema constraints before data access.
	ErrValidation = errors.New("validation failed")
)
