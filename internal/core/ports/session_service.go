package ports

import (
	"context"

	"github.com/knowcards/appshell/internal/core/domain"
)

// AuthPredicate is all the navigation guard needs from the session.
type AuthPredicate interface {
	IsAuthenticated() bool
}

// SessionService owns the authentication state of the process.
type SessionService interface {
	AuthPredicate

	Login(ctx context.Context, email, password string) domain.AuthResult
	Register(ctx context.Context, email, password, fullName string) domain.AuthResult
	Logout(ctx context.Context) error
	FetchCurrentUser(ctx context.Context)
	Initialize(ctx context.Context) error

	State() domain.SessionState
	Snapshot() domain.Session
	CurrentUser() *domain.User
	Token() string
}
