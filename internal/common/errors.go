// Package common defines shared constants and sentinel errors used across
// FinKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input validation errors.
	ErrMissingInput = errors.New("missing input")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// API token errors.
	ErrInvalidToken = errors.New("invalid token")
)
