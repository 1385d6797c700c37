package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAccount_SQLite(t *testing.T) {
	ctx := context.Background()
	db, m, err := repomanager.Open(ctx, "file:provision_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := NewProvisionService(db, m)

	root, err := cheapHasher().Hash("root", "toor")
	require.NoError(t, err)

	first, created, err := svc.EnsureAccount(ctx, root)
	require.NoError(t, err)
	assert.True(t, created)

	other, err := cheapHasher().Hash("root", "changed")
	require.NoError(t, err)

	second, created, err := svc.EnsureAccount(ctx, other)
	require.NoError(t, err)
	assert.False(t, created, "existing account must be kept")
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Credential.Equal(root))
}

func TestEnsureAccount_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeAccountsRepo{insertErr: errors.New("disk full")}
	svc := NewProvisionService(db, &fakeRepoManager{accounts: repo})

	mock.ExpectBegin()
	mock.ExpectRollback()

	cred, err := credentials.New("root", "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$ZGlnZXN0ZGlnZXN0ZGlnZXN0")
	require.NoError(t, err)

	_, _, err = svc.EnsureAccount(context.Background(), cred)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAccountFromFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeAccountsRepo{}
	svc := NewProvisionService(db, &fakeRepoManager{accounts: repo})

	path := filepath.Join(t.TempDir(), "root.cred")
	require.NoError(t, os.WriteFile(path, []byte("root+$argon2id$v=19$m=8,t=1,p=1$c2FsdA$ZGln+ZXN0\n"), 0o600))

	mock.ExpectBegin()
	mock.ExpectCommit()

	acc, created, err := svc.EnsureAccountFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "root", acc.Username())
	require.NoError(t, mock.ExpectationsWereMet())

	_, _, err = svc.EnsureAccountFromFile(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, credentials.ErrCredentialIO)
}
