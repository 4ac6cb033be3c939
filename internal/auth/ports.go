package auth

import (
	"context"

	"bookweb/internal/apiclient"
	"bookweb/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=auth

// API is the member part of the remote API.
type API interface {
	Login(ctx context.Context, loginID, password string) (entity.Member, error)
	Join(ctx context.Context, req apiclient.JoinRequest) error
	Logout(ctx context.Context) error
}
