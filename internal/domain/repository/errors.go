package repository

import "errors"

// Common repository errors shared across storage implementations.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity with the same identifier already exists.
	ErrAlreadyExists = errors.New("already exists")
)
