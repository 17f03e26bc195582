package store

import "errors"

var (
	ErrNotFound = errors.New("store: record not found")
	// ErrConflict is returned when the storage rejects a slug that another
	// record already holds.
	ErrConflict    = errors.New("store: slug already taken")
	ErrInvalidName = errors.New("store: invalid table name")
)
