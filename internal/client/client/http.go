package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/api"
	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 64 * 1024

// HTTPClient talks to the login server. It is safe for concurrent use.
type HTTPClient struct {
	base *url.URL
	http *http.Client
}

// NewHTTPClient validates host (an absolute http or https URL) and returns a
// client whose requests time out after timeout (0 means no timeout).
func NewHTTPClient(host string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHost, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadHost, host)
	}
	return &HTTPClient{base: u, http: &http.Client{Timeout: timeout}}, nil
}

// Endpoint resolves path against the host.
func (c *HTTPClient) Endpoint(path string) string {
	return c.base.ResolveReference(&url.URL{Path: path}).String()
}

// TestLogin asks whether the credentials are valid: 200 is true, 403 and 404
// are false.
func (c *HTTPClient) TestLogin(ctx context.Context, username, password string) (bool, error) {
	status, body, err := c.post(ctx, api.LoginTestPath, username, password)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusForbidden, http.StatusNotFound:
		return false, nil
	default:
		return false, &UnexpectedResponseError{Status: status, Body: body}
	}
}

// Login exchanges the credentials for a session token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	status, body, err := c.post(ctx, api.LoginPath, username, password)
	if err != nil {
		return "", err
	}

	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusForbidden:
		return "", ErrUnauthorized
	case http.StatusNotFound:
		return "", ErrUnknownUser
	default:
		return "", &UnexpectedResponseError{Status: status, Body: body}
	}
}

func (c *HTTPClient) post(ctx context.Context, path, username, password string) (int, string, error) {
	payload, err := json.Marshal(api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return 0, "", err
	}
	defer common.WipeByteArray(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	return resp.StatusCode, string(body), nil
}
