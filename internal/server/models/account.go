package models

import (
	"time"

	"github.com/dmitrijs2005/todoauth/internal/credentials"
)

// Account is a stored login identity. ID is assigned by storage.
type Account struct {
	ID         uint64
	Credential credentials.Credential
	CreatedAt  time.Time
}

// Username is a shortcut for Credential.Username.
func (a *Account) Username() string {
	return a.Credential.Username
}
