// Package cryptox implements the password hashing primitive used for stored
// credentials: Argon2id encoded as a self-describing PHC string.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash is returned when an encoded hash cannot be decoded.
var ErrInvalidHash = errors.New("invalid password hash")

const algorithm = "argon2id"

// Upper bounds on the cost of a decoded hash. A stored value above them is
// treated as corrupt rather than allowed to exhaust memory or CPU.
const (
	maxMemoryKiB = 4 * 1024 * 1024
	maxTime      = 64
)

// Params are the Argon2id cost settings plus salt and digest sizes.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultParams returns the production cost settings.
func DefaultParams() Params {
	return Params{
		Time:    3,
		Memory:  64 * 1024,
		Threads: 4,
		SaltLen: 128,
		KeyLen:  32,
	}
}

// HashPassword salts and hashes password and returns a PHC string:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<digest>
//
// Salt and digest use unpadded standard base64, so the result may contain '+'.
func HashPassword(password []byte, p Params) (string, error) {
	salt, err := common.RandBytes(int(p.SaltLen))
	if err != nil {
		return "", fmt.Errorf("salt generation: %w", err)
	}

	digest := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm,
		argon2.Version,
		p.Memory,
		p.Time,
		p.Threads,
		enc.EncodeToString(salt),
		enc.EncodeToString(digest),
	), nil
}

// VerifyPassword recomputes the digest of password with the parameters and
// salt embedded in encoded and compares in constant time.
// Returns (false, nil) on mismatch and an ErrInvalidHash-wrapped error when
// encoded is malformed.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	p, salt, want, err := decode(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func decode(encoded string) (Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, digest
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, fmt.Errorf("%w: format", ErrInvalidHash)
	}
	if parts[1] != algorithm {
		return Params{}, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: version: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}
	if threads == 0 || threads > 255 || time == 0 || time > maxTime || memory > maxMemoryKiB {
		return Params{}, nil, nil, fmt.Errorf("%w: parameters out of range", ErrInvalidHash)
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	digest, err := enc.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: digest: %v", ErrInvalidHash, err)
	}
	if len(digest) < 16 || len(digest) > 1024 {
		return Params{}, nil, nil, fmt.Errorf("%w: digest length %d", ErrInvalidHash, len(digest))
	}

	p := Params{
		Time:    time,
		Memory:  memory,
		Threads: uint8(threads),
		SaltLen: uint32(len(salt)),
		KeyLen:  uint32(len(digest)),
	}
	return p, salt, digest, nil
}
