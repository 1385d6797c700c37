package client

import "context"

type Client interface {
	TestLogin(ctx context.Context, username, password string) (bool, error)
	Login(ctx context.Context, username, password string) (string, error)
}
