// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a document ID is malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyUsername is returned when a username is missing.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrPasswordTooShort is returned when a password is under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 5 characters long")

	// ErrEmptyTitle is returned when an item title is missing.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyDescription is returned when an item description is missing.
	ErrEmptyDescription = errors.New("description cannot be empty")
)
