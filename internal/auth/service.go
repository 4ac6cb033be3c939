package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bookweb/internal/apiclient"
	"bookweb/internal/entity"
)

var (
	ErrInvalidCredentials = errors.New("invalid login id or password")
	ErrAlreadyExists      = errors.New("login id already taken")
)

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// Login checks the credentials against the remote API. The API's session
// cookie is captured by the credentials bound to ctx.
func (s *Service) Login(ctx context.Context, loginID, password string) (entity.User, error) {
	m, err := s.api.Login(ctx, loginID, password)
	if err != nil {
		var se *apiclient.StatusError
		if errors.Is(err, apiclient.ErrUnauthorized) || (errors.As(err, &se) && se.StatusCode == http.StatusBadRequest) {
			return entity.User{}, ErrInvalidCredentials
		}
		return entity.User{}, fmt.Errorf("login: %w", err)
	}
	return m.User(), nil
}

func (s *Service) Join(ctx context.Context, req apiclient.JoinRequest) error {
	if err := s.api.Join(ctx, req); err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusConflict {
			return ErrAlreadyExists
		}
		return fmt.Errorf("join: %w", err)
	}
	return nil
}

// Logout ends the remote session. Callers clear the local session whatever
// this returns.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
