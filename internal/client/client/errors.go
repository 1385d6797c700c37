package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownUser  = errors.New("unknown user")
	ErrBadHost      = errors.New("invalid host")
)

// UnexpectedResponseError is a status the login protocol does not define.
type UnexpectedResponseError struct {
	Status int
	Body   string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response %d: %s", e.Status, e.Body)
}
