package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a unique constraint
	ErrConflict = errors.New("record already exists")
)
