package credentials

import (
	"fmt"
	"os"
	"strings"
)

const separator = "+"

// ValidateUsername fails unless s is non-empty and consists only of ASCII
// letters, digits, '_' and '-'.
func ValidateUsername(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUsername)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidUsername, s)
		}
	}
	return nil
}

// Serialize returns the textual form "<username>+<hash>". It fails on an
// invalid username or an empty hash, so the result always parses back to c.
func Serialize(c Credential) (string, error) {
	if err := ValidateUsername(c.Username); err != nil {
		return "", err
	}
	hash, ok := c.PasswordHash()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, c.Kind())
	}
	if hash == "" {
		return "", ErrEmptyHash
	}
	return c.Username + separator + hash, nil
}

// Deserialize parses the textual form produced by Serialize. The first '+'
// separates the username from the hash; everything after it is the hash.
func Deserialize(s string) (Credential, error) {
	username, hash, found := strings.Cut(s, separator)
	if !found {
		return Credential{}, ErrMissingSeparator
	}
	return New(username, hash)
}

// LoadFromFile reads a credential file. A single trailing line ending is
// tolerated.
func LoadFromFile(path string) (Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: read %s: %v", ErrCredentialIO, path, err)
	}

	s := strings.TrimSuffix(string(data), "\n")
	s = strings.TrimSuffix(s, "\r")

	c, err := Deserialize(s)
	if err != nil {
		return Credential{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// SaveToFile writes the textual form of c to path, replacing any existing
// file.
func SaveToFile(c Credential, path string) error {
	s, err := Serialize(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrCredentialIO, path, err)
	}
	return nil
}
