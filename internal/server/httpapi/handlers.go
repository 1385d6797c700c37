package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todoauth/internal/api"
	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/credentials"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) handleLogin(c *gin.Context) {
	req, ok := s.bindLogin(c)
	if !ok {
		return
	}

	token, err := s.login.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(c, "login", req.Username, err)
		return
	}

	s.logger.Info(c.Request.Context(), "login succeeded", "username", req.Username, requestIDKey, c.GetString(requestIDKey))
	c.String(http.StatusOK, token)
}

func (s *HTTPServer) handleTestLogin(c *gin.Context) {
	req, ok := s.bindLogin(c)
	if !ok {
		return
	}

	if err := s.login.TestLogin(c.Request.Context(), req.Username, req.Password); err != nil {
		s.fail(c, "test login", req.Username, err)
		return
	}

	s.logger.Info(c.Request.Context(), "test login succeeded", "username", req.Username, requestIDKey, c.GetString(requestIDKey))
	c.Status(http.StatusOK)
}

// bindLogin decodes the request body, answering 413 or 400 itself on failure.
func (s *HTTPServer) bindLogin(c *gin.Context) (api.LoginRequest, bool) {
	var req api.LoginRequest

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, common.MaxLoginBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "request body too large")
			return req, false
		}
		s.logger.Debug(c.Request.Context(), "bad login request", "error", err, requestIDKey, c.GetString(requestIDKey))
		c.String(http.StatusBadRequest, "malformed login request")
		return req, false
	}
	return req, true
}

// fail translates a login error into its status code and logs it once.
// System errors are logged in full and answered with an opaque body.
func (s *HTTPServer) fail(c *gin.Context, op, username string, err error) {
	ctx := c.Request.Context()
	status := StatusFor(err)
	rid := c.GetString(requestIDKey)

	switch status {
	case http.StatusInternalServerError:
		s.logger.Error(ctx, op+" failed", "username", username, "error", err, requestIDKey, rid)
		c.String(status, common.ErrSystem.Error())
	case http.StatusBadRequest:
		s.logger.Info(ctx, op+" rejected", "username", username, "error", err, requestIDKey, rid)
		c.String(status, err.Error())
	default:
		s.logger.Info(ctx, op+" denied", "username", username, "reason", err.Error(), requestIDKey, rid)
		c.Status(status)
	}
}

// StatusFor maps login errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, credentials.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, common.ErrWrongPassword):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
