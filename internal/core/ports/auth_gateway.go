package ports

import (
	"context"

	"github.com/knowcards/appshell/internal/core/domain"
)

// AuthGateway performs the /auth calls of the backend.
//
// Login, Register and Logout never trigger the transport's forced logout:
// a rejected credential exchange must not touch the session, and a rejected
// logout is already a logout.
type AuthGateway interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	Logout(ctx context.Context) error
	// Me fetches the current user. With an empty token the session's token is
	// used and a 401 forces a logout; with an explicit token the call is a
	// check of a token not yet committed to the session.
	Me(ctx context.Context, token string) (*domain.User, error)
}
