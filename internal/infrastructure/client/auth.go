package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/infrastructure/transport"
)

// AuthClient implements ports.AuthGateway over the /auth endpoints.
type AuthClient struct {
	r Requester
}

func NewAuthClient(r Requester) *AuthClient {
	return &AuthClient{r: r}
}

// Login posts the credentials. A 401 here means bad credentials, not an
// expired session, so the request never ends the session and the error
// matches domain.ErrInvalidCredentials.
func (c *AuthClient) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.r.Post(transport.WithoutInvalidation(ctx), "/auth/login", req, &resp); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. The backend may answer with a token response
// or with the bare user record; both decode into an AuthResponse.
func (c *AuthClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var raw json.RawMessage
	if err := c.r.Post(transport.WithoutInvalidation(ctx), "/auth/register", req, &raw); err != nil {
		return nil, err
	}
	return decodeRegistration(raw)
}

func (c *AuthClient) Logout(ctx context.Context) error {
	return c.r.Post(transport.WithoutInvalidation(ctx), "/auth/logout", nil, nil)
}

// Me fetches the user behind token, or behind the session's token when token
// is empty.
func (c *AuthClient) Me(ctx context.Context, token string) (*domain.User, error) {
	if token != "" {
		ctx = transport.WithToken(ctx, token)
	}
	var u domain.User
	if err := c.r.Get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func decodeRegistration(raw json.RawMessage) (*domain.AuthResponse, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return &domain.AuthResponse{}, nil
	}

	var envelope struct {
		AccessToken *string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode registration response: %w", err)
	}

	if envelope.AccessToken != nil {
		var resp domain.AuthResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decode registration response: %w", err)
		}
		return &resp, nil
	}

	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode registered user: %w", err)
	}
	return &domain.AuthResponse{User: &u}, nil
}
