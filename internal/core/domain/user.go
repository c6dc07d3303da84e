package domain

import "time"

// User is the account record returned by GET /auth/me and embedded in
// credential exchange responses. The session manager only cares that it
// exists; the shell renders it on the profile view.
type User struct {
	ID          ID         `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// DisplayName returns the full name when set, otherwise the username or email.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// AuthResponse is the payload of a successful credential exchange. User may
// be absent when the backend only issues a token; TokenType and ExpiresIn
// are informational.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// AuthResult is what Login and Register hand back to callers. Failures never
// surface as errors; Error carries a message fit for display.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
