// Package services contains application services for the login client.
// This file defines the authentication service: credential checks and token
// retrieval against the server, plus local provisioning of credential files.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todoauth/internal/client/client"
	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/cryptox"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - TestLogin: report whether the server accepts the credentials.
//   - Login: obtain a session token.
//   - Provision: hash a password locally and write a credential file, for
//     seeding a server account.
//
// Password slices are wiped before returning.
type AuthService interface {
	TestLogin(ctx context.Context, username string, password []byte) (bool, error)
	Login(ctx context.Context, username string, password []byte) (string, error)
	Provision(username string, password []byte, path string) (credentials.Credential, error)
}

// authService is the concrete AuthService backed by a remote Client.
type authService struct {
	client client.Client
	hasher *credentials.Hasher
}

// NewAuthService constructs an AuthService bound to the given API client.
// The client may be nil when only Provision is used.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c, hasher: credentials.NewHasher(cryptox.DefaultParams())}
}

func (a *authService) TestLogin(ctx context.Context, username string, password []byte) (bool, error) {
	defer common.WipeByteArray(password)

	if err := credentials.ValidateUsername(username); err != nil {
		return false, err
	}

	ok, err := a.client.TestLogin(ctx, username, string(password))
	if err != nil {
		return false, fmt.Errorf("test login error: %w", err)
	}
	return ok, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (string, error) {
	defer common.WipeByteArray(password)

	if err := credentials.ValidateUsername(username); err != nil {
		return "", err
	}

	token, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	return token, nil
}

func (a *authService) Provision(username string, password []byte, path string) (credentials.Credential, error) {
	defer common.WipeByteArray(password)

	cred, err := a.hasher.Hash(username, string(password))
	if err != nil {
		return credentials.Credential{}, err
	}
	if err := credentials.SaveToFile(cred, path); err != nil {
		return credentials.Credential{}, err
	}
	return cred, nil
}
