// Package api defines the JSON bodies and paths shared by the login server
// and its clients.
package api

const (
	// LoginPath issues a signed session token for valid credentials.
	LoginPath = "v1/login"
	// LoginTestPath only reports whether credentials are valid.
	LoginTestPath = "v1/login/test"
)

// LoginRequest is the body of both login endpoints. Password is the
// plaintext the user typed; it is never hashed client-side.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
