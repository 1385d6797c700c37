package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/todoauth/internal/client/client"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	testLoginRet bool
	testLoginErr error
	loginRet     string
	loginErr     error

	calls   int
	gotUser string
	gotPass string
}

func (f *fakeClient) TestLogin(_ context.Context, username, password string) (bool, error) {
	f.calls++
	f.gotUser, f.gotPass = username, password
	return f.testLoginRet, f.testLoginErr
}

func (f *fakeClient) Login(_ context.Context, username, password string) (string, error) {
	f.calls++
	f.gotUser, f.gotPass = username, password
	return f.loginRet, f.loginErr
}

func newTestService(c client.Client) *authService {
	return &authService{
		client: c,
		hasher: credentials.NewHasher(cryptox.Params{Time: 1, Memory: 8, Threads: 1, SaltLen: 16, KeyLen: 32}),
	}
}

// ---- tests ----

func TestTestLogin_PassesPlaintextAndWipes(t *testing.T) {
	fc := &fakeClient{testLoginRet: true}
	svc := newTestService(fc)

	pw := []byte("secret1")
	ok, err := svc.TestLogin(context.Background(), "alice", pw)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", fc.gotUser)
	assert.Equal(t, "secret1", fc.gotPass)
	assert.Equal(t, make([]byte, len(pw)), pw, "password must be wiped")
}

func TestTestLogin_Errors(t *testing.T) {
	fc := &fakeClient{testLoginErr: client.ErrUnavailable}
	svc := newTestService(fc)

	_, err := svc.TestLogin(context.Background(), "alice", []byte("x"))
	assert.ErrorIs(t, err, client.ErrUnavailable)

	_, err = svc.TestLogin(context.Background(), "not valid", []byte("x"))
	assert.ErrorIs(t, err, credentials.ErrInvalidUsername)
	assert.Equal(t, 1, fc.calls, "invalid usernames never reach the server")
}

func TestLogin(t *testing.T) {
	fc := &fakeClient{loginRet: "a.b.c"}
	tok, err := newTestService(fc).Login(context.Background(), "alice", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	fc = &fakeClient{loginErr: &client.UnexpectedResponseError{Status: 503, Body: "down"}}
	_, err = newTestService(fc).Login(context.Background(), "alice", []byte("secret1"))
	var ue *client.UnexpectedResponseError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 503, ue.Status)
}

func TestProvision_WritesVerifiableCredential(t *testing.T) {
	svc := newTestService(nil)
	path := filepath.Join(t.TempDir(), "root.cred")

	cred, err := svc.Provision("root", []byte("toor"), path)
	require.NoError(t, err)

	loaded, err := credentials.LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(cred))

	ok, err := svc.hasher.Verify(loaded, "root", "toor")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProvision_InvalidUsername(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cred")
	_, err := newTestService(nil).Provision("bad name", []byte("pw"), path)
	assert.ErrorIs(t, err, credentials.ErrInvalidUsername)
	assert.NoFileExists(t, path)
}
