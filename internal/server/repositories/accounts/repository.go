package accounts

import (
	"context"

	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
)

// Repository is the account store. FindAccountByUsername returns
// common.ErrorNotFound when no account matches.
type Repository interface {
	FindAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	InsertAccount(ctx context.Context, cred credentials.Credential) (*models.Account, error)
}
