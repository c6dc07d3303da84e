package domain

import "errors"

var (
	// ErrUnauthorized marks a response the backend rejected as unauthenticated.
	// The transport has already forced a logout when a caller sees it.
	ErrUnauthorized = errors.New("session expired or not authenticated")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("resource not found")

	// ErrNotAuthenticated is returned locally when an operation needs a
	// session and none is established.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrTokenExpired marks a persisted token whose exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidCredentials marks a rejected credential exchange.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
