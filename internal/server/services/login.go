// Package services contains server-side business logic. This file implements
// LoginService, which checks a username/password pair against the stored
// credential and issues a session token on success.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/server/metrics"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoauth/internal/server/workers"
)

// Verifier checks a password against a stored credential.
// *credentials.Hasher implements it.
type Verifier interface {
	Verify(c credentials.Credential, username, password string) (bool, error)
}

// TokenIssuer mints a session token for an authenticated account.
// *auth.Issuer implements it.
type TokenIssuer interface {
	Issue(accountID uint64) (string, error)
}

// LoginService runs the login state machine:
// lookup, verification, then Authenticated, Rejected or Unknown.
type LoginService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	verifier    Verifier
	issuer      TokenIssuer
	pool        *workers.Pool

	// dummy is verified against for unknown usernames when set.
	dummy *credentials.Credential
}

// NewLoginService constructs a LoginService. Verification runs on pool.
func NewLoginService(db *sql.DB, m repomanager.RepositoryManager, v Verifier, issuer TokenIssuer, pool *workers.Pool) *LoginService {
	return &LoginService{
		db:          db,
		repomanager: m,
		verifier:    v,
		issuer:      issuer,
		pool:        pool,
	}
}

// EqualizeTiming makes lookups of unknown usernames verify the password
// against dummy and discard the result, so both outcomes cost one hash.
func (s *LoginService) EqualizeTiming(dummy credentials.Credential) {
	s.dummy = &dummy
}

// Authenticate returns the account on success. Errors:
//   - credentials.ErrInvalidUsername for a malformed username
//   - common.ErrUnknownUser when no account matches
//   - common.ErrWrongPassword when verification fails
//   - common.ErrSystem wrapping any storage or hashing failure
func (s *LoginService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	if err := credentials.ValidateUsername(username); err != nil {
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if s.dummy != nil {
				_, _ = s.verify(ctx, *s.dummy, s.dummy.Username, password)
			}
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("%w: account lookup: %w", common.ErrSystem, err)
	}

	ok, err := s.verify(ctx, account.Credential, username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: verify: %w", common.ErrSystem, err)
	}
	if !ok {
		return nil, common.ErrWrongPassword
	}

	return account, nil
}

// Login authenticates and returns a signed session token.
func (s *LoginService) Login(ctx context.Context, username, password string) (token string, err error) {
	defer s.record(metrics.RouteLogin, time.Now(), &err)

	account, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err = s.issuer.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("%w: issue token: %w", common.ErrSystem, err)
	}
	return token, nil
}

// TestLogin authenticates without issuing a token.
func (s *LoginService) TestLogin(ctx context.Context, username, password string) (err error) {
	defer s.record(metrics.RouteLoginTest, time.Now(), &err)

	_, err = s.Authenticate(ctx, username, password)
	return err
}

func (s *LoginService) verify(ctx context.Context, c credentials.Credential, username, password string) (bool, error) {
	return workers.Do(ctx, s.pool, func() (bool, error) {
		return s.verifier.Verify(c, username, password)
	})
}

func (s *LoginService) record(route string, start time.Time, err *error) {
	metrics.RecordLogin(route, Outcome(*err), time.Since(start))
}

// Outcome maps a login error to its metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, common.ErrUnknownUser):
		return metrics.OutcomeUnknownUser
	case errors.Is(err, common.ErrWrongPassword):
		return metrics.OutcomeWrongPassword
	case errors.Is(err, credentials.ErrInvalidUsername):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
