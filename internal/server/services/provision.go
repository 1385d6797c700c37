package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
)

// ProvisionService seeds accounts from credential files.
type ProvisionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProvisionService(db *sql.DB, m repomanager.RepositoryManager) *ProvisionService {
	return &ProvisionService{db: db, repomanager: m}
}

// EnsureAccount inserts cred unless an account with its username exists.
// An existing account is left untouched. created reports whether a row was
// written.
func (s *ProvisionService) EnsureAccount(ctx context.Context, cred credentials.Credential) (account *models.Account, created bool, err error) {
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		existing, err := repo.FindAccountByUsername(ctx, cred.Username)
		if err == nil {
			account = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		account, err = repo.InsertAccount(ctx, cred)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("provision %s: %w", cred.Username, err)
	}
	return account, created, nil
}

// EnsureAccountFromFile loads a credential file and provisions it.
func (s *ProvisionService) EnsureAccountFromFile(ctx context.Context, path string) (*models.Account, bool, error) {
	cred, err := credentials.LoadFromFile(path)
	if err != nil {
		return nil, false, err
	}
	return s.EnsureAccount(ctx, cred)
}
