package ports

import "context"

// TokenStore is the durable slot holding the bearer token across restarts.
// An absent token is reported as ("", nil).
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Pinger is implemented by stores backed by a remote service; the readiness
// check pings it.
type Pinger interface {
	Ping(ctx context.Context) error
}
