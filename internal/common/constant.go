// Package common contains shared constants and sentinel errors used across
// todoauth components.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request id.
const RequestIDHeaderName = "X-Request-ID"

// MaxLoginBodyBytes bounds the size of a login request body.
const MaxLoginBodyBytes = 16 * 1024
