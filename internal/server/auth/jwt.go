// Package auth issues and parses the signed session tokens handed out on a
// successful login.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = time.Hour

var (
	// ErrKeyMalformed is returned when the signing secret is unusable.
	ErrKeyMalformed = errors.New("signing key malformed")
	// ErrEncode is returned when the token cannot be signed.
	ErrEncode = errors.New("token encoding failed")
)

// Claims is the token payload: {"id": "<account id>", "exp": "<RFC3339>"}.
// exp is kept as an RFC3339 string on the wire; the jwt.Claims methods
// translate it for validation.
type Claims struct {
	ID        string `json:"id"`
	ExpiresAt string `json:"exp"`
}

var _ jwt.Claims = Claims{}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, c.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("exp: %w", err)
	}
	return jwt.NewNumericDate(t), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)  { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuer() (string, error)              { return "", nil }
func (c Claims) GetSubject() (string, error)             { return c.ID, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// AccountID parses the id claim.
func (c Claims) AccountID() (uint64, error) {
	return strconv.ParseUint(c.ID, 10, 64)
}

// Issuer signs HS256 tokens with a secret injected at construction. It holds
// no mutable state and is safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// TTL reports the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue returns a token for accountID expiring ttl from now (UTC).
func (i *Issuer) Issue(accountID uint64) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrKeyMalformed
	}

	claims := Claims{
		ID:        strconv.FormatUint(accountID, 10),
		ExpiresAt: i.now().UTC().Add(i.ttl).Format(time.RFC3339),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return token, nil
}

// Parse validates the signature and expiry of tokenString. Tokens signed
// with anything but HS256 are rejected.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrKeyMalformed
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
