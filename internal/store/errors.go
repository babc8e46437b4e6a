// Package store defines the persistence interfaces for users, items and
// uploaded files, together with the sentinel errors implementations return.
package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrUserNotFound is returned when a requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound is returned when a requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrFileNotFound is returned when a requested file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored.
	ErrInvalidEntity = errors.New("invalid entity")
)
