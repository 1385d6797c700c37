// Package common defines shared constants and sentinel errors used across
// client and server layers of todoauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Login outcomes. These are normal terminal states, not failures.
	ErrUnknownUser   = errors.New("unknown user")
	ErrWrongPassword = errors.New("wrong password")

	// ErrSystem wraps storage, hashing and signing failures. Its cause is
	// logged server-side and never echoed to the caller.
	ErrSystem = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
