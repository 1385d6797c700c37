// Package server wires configuration, storage, hashing and the HTTP API into
// a runnable login service and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/dmitrijs2005/todoauth/internal/cryptox"
	"github.com/dmitrijs2005/todoauth/internal/logging"
	"github.com/dmitrijs2005/todoauth/internal/server/auth"
	"github.com/dmitrijs2005/todoauth/internal/server/config"
	"github.com/dmitrijs2005/todoauth/internal/server/httpapi"
	"github.com/dmitrijs2005/todoauth/internal/server/metrics"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoauth/internal/server/secrets"
	"github.com/dmitrijs2005/todoauth/internal/server/services"
	"github.com/dmitrijs2005/todoauth/internal/server/workers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// hashParams are the Argon2id settings for hashes the server creates itself.
var hashParams = cryptox.DefaultParams

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	loginService *services.LoginService
	httpServer   *httpapi.HTTPServer
}

// NewApp performs all startup work. Any failure is fatal for the process:
// unreadable or empty secret, unreachable database, failed migrations, or an
// invalid root credential file.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(logOut, level)

	secret, err := secrets.Load(ctx, c.SecretKeyFile, secrets.S3Options{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("token secret: %w", err)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.RootCredentialFile != "" {
		account, created, err := services.NewProvisionService(db, m).EnsureAccountFromFile(ctx, c.RootCredentialFile)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("root account: %w", err)
		}
		logger.Info(ctx, "root account ready", "username", account.Username(), "id", account.ID, "created", created)
	}

	hasher := credentials.NewHasher(hashParams())
	pool := workers.NewPool(c.HashWorkers)
	issuer := auth.NewIssuer(secret, c.TokenTTL)

	ls := services.NewLoginService(db, m, hasher, issuer, pool)
	if c.EqualizeTiming {
		dummy, err := dummyCredential(hasher)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		ls.EqualizeTiming(dummy)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterMetrics(reg)

	hs := httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, ls, reg)

	logger.Info(ctx, "configured",
		"address", c.EndpointAddrHTTP,
		"token_ttl", issuer.TTL().String(),
		"hash_workers", pool.Size(),
		"equalize_timing", c.EqualizeTiming,
	)

	return &App{config: c, logger: logger, db: db, loginService: ls, httpServer: hs}, nil
}

// dummyCredential hashes a random password nobody knows.
func dummyCredential(h *credentials.Hasher) (credentials.Credential, error) {
	b, err := common.RandBytes(16)
	if err != nil {
		return credentials.Credential{}, err
	}
	defer common.WipeByteArray(b)
	return h.Hash("dummy", hex.EncodeToString(b))
}

// initSignalHandler cancels on SIGINT, SIGTERM or SIGQUIT. The handler
// goroutine exits once ctx is done; the returned func waits for that.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) (wait func()) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)

		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()

	return func() { <-done }
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	waitSignals := app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	cancelFunc()
	waitSignals()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
	return runErr
}
