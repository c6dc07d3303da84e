package transport

import "context"

type ctxKey int

const (
	noInvalidationKey ctxKey = iota
	tokenOverrideKey
)

// WithoutInvalidation marks requests made with ctx so that a 401 response is
// returned to the caller without ending the session. Credential exchanges
// and logout use it.
func WithoutInvalidation(ctx context.Context) context.Context {
	return context.WithValue(ctx, noInvalidationKey, true)
}

func invalidationSuppressed(ctx context.Context) bool {
	v, _ := ctx.Value(noInvalidationKey).(bool)
	return v
}

// WithToken sends requests made with ctx with the given bearer token instead
// of the session's. Such requests never end the session.
func WithToken(ctx context.Context, token string) context.Context {
	return WithoutInvalidation(context.WithValue(ctx, tokenOverrideKey, token))
}

func tokenOverride(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(tokenOverrideKey).(string)
	return v, ok
}
