package credentials

// Kind names a credential kind.
type Kind string

const (
	KindPassword Kind = "password"
)

// Secret is the stored, checkable part of a Credential. The set of
// implementations is closed to this package.
type Secret interface {
	Kind() Kind
	isSecret()
}

// PasswordHash is an encoded Argon2id hash, never a plaintext password.
type PasswordHash string

func (PasswordHash) Kind() Kind { return KindPassword }
func (PasswordHash) isSecret()  {}

// Credential is a username together with its secret. The zero value is not
// a valid credential.
type Credential struct {
	Username string
	Secret   Secret
}

// New builds a password credential from an already hashed password, as read
// from storage. The username is validated; the hash is kept opaque.
func New(username, passwordHash string) (Credential, error) {
	if err := ValidateUsername(username); err != nil {
		return Credential{}, err
	}
	if passwordHash == "" {
		return Credential{}, ErrEmptyHash
	}
	return Credential{Username: username, Secret: PasswordHash(passwordHash)}, nil
}

// PasswordHash returns the stored hash if c is a password credential.
func (c Credential) PasswordHash() (string, bool) {
	h, ok := c.Secret.(PasswordHash)
	return string(h), ok
}

// Kind reports the kind of the credential's secret, or "" if it has none.
func (c Credential) Kind() Kind {
	if c.Secret == nil {
		return ""
	}
	return c.Secret.Kind()
}

// Equal reports structural equality.
func (c Credential) Equal(other Credential) bool {
	return c == other
}
