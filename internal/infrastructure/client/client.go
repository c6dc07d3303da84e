// Package client holds the typed request builders for the backend: the auth
// endpoints used by the session and the cards, notebooks and media resource
// clients.
package client

import (
	"context"
	"errors"
	"net/url"
)

var errEmptyID = errors.New("client: empty resource id")

// Requester is the slice of the transport the builders need.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}
