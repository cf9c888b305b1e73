// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (client-fixable input problems).
	ErrorValidation = errors.New("validation error")

	// ErrorInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so callers cannot tell them apart.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is the single outcome for any malformed, tampered,
	// expired or incomplete session token.
	ErrInvalidToken = errors.New("invalid token")
)
