// Package accounts persists login accounts. The credential column holds the
// serialized "<username>+<hash>" form; username is duplicated in its own
// column for the unique index and lookups.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
)

// ErrCorruptRecord is returned when a stored row cannot be turned back into
// a valid credential.
var ErrCorruptRecord = errors.New("corrupt account record")

// SQLRepository works with both the pgx and sqlite drivers.
type SQLRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, now: time.Now}
}

func (r *SQLRepository) FindAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, credential, created_at FROM accounts
		 WHERE username = $1
		 `

	var (
		id         int64
		serialized string
		createdAt  time.Time
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(&id, &serialized, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	cred, err := credentials.Deserialize(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: account %d: %v", ErrCorruptRecord, id, err)
	}
	if cred.Username != username {
		return nil, fmt.Errorf("%w: account %d: username mismatch", ErrCorruptRecord, id)
	}

	return &models.Account{ID: uint64(id), Credential: cred, CreatedAt: createdAt}, nil
}

func (r *SQLRepository) InsertAccount(ctx context.Context, cred credentials.Credential) (*models.Account, error) {
	serialized, err := credentials.Serialize(cred)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO accounts (username, credential, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	createdAt := r.now().UTC()
	var id int64
	err = r.db.QueryRowContext(ctx, query, cred.Username, serialized, createdAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &models.Account{ID: uint64(id), Credential: cred, CreatedAt: createdAt}, nil
}
