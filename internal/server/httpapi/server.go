// Package httpapi exposes the login service over HTTP+JSON using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/api"
	"github.com/dmitrijs2005/todoauth/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// LoginService is the subset of services.LoginService the handlers use.
type LoginService interface {
	Login(ctx context.Context, username, password string) (string, error)
	TestLogin(ctx context.Context, username, password string) error
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	login   LoginService
	engine  *gin.Engine
}

// NewHTTPServer builds the router. gatherer backs /metrics.
func NewHTTPServer(address string, l logging.Logger, login LoginService, gatherer prometheus.Gatherer) *HTTPServer {
	s := &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		login:   login,
	}
	s.engine = s.routes(gatherer)
	return s
}

func (s *HTTPServer) routes(gatherer prometheus.Gatherer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(loggingMiddleware(s.logger))

	engine.POST("/"+api.LoginPath, s.handleLogin)
	engine.POST("/"+api.LoginTestPath, s.handleTestLogin)

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return engine
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
