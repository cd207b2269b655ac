package domain

import "errors"

var (
	// ErrNotFound indicates that a requested listing or message does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrInvalidTransition indicates a status change the transition policy forbids.
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrUnauthorized indicates missing or invalid admin credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
	// ErrStorage indicates that an image upload failed.
	ErrStorage = errors.New("image storage error")
)
