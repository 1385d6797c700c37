package credentials

import (
	"fmt"

	"github.com/dmitrijs2005/todoauth/internal/cryptox"
)

// Hasher salts and hashes plaintext passwords into credentials and checks
// plaintext passwords against them. It is safe for concurrent use.
type Hasher struct {
	params cryptox.Params
}

// NewHasher returns a Hasher using the given Argon2id parameters.
func NewHasher(p cryptox.Params) *Hasher {
	return &Hasher{params: p}
}

// Hash validates username and then hashes password with a fresh random salt.
// No hashing work is done for an invalid username.
func (h *Hasher) Hash(username, password string) (Credential, error) {
	if err := ValidateUsername(username); err != nil {
		return Credential{}, err
	}

	encoded, err := cryptox.HashPassword([]byte(password), h.params)
	if err != nil {
		return Credential{}, fmt.Errorf("hash password: %w", err)
	}

	return Credential{Username: username, Secret: PasswordHash(encoded)}, nil
}

// Verify reports whether password is the password stored in c for username.
//
// If c belongs to a different username, Verify returns false without hashing.
// This skips work; it is not a timing-safety guarantee.
//
// A malformed stored hash or an unknown credential kind is an error, never a
// plain false.
func (h *Hasher) Verify(c Credential, username, password string) (bool, error) {
	if c.Username != username {
		return false, nil
	}

	switch s := c.Secret.(type) {
	case PasswordHash:
		ok, err := cryptox.VerifyPassword([]byte(password), string(s))
		if err != nil {
			return false, fmt.Errorf("verify password: %w", err)
		}
		return ok, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedKind, c.Kind())
	}
}
