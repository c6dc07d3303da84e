// Package transport is the HTTP client every backend call goes through. It
// attaches the session's bearer token to outgoing requests and reports 401
// responses back to the session.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/knowcards/appshell/internal/api/metrics"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 64 << 10
	requestIDHeader = "X-Request-ID"
)

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token() string
}

// Invalidator is told when the backend rejected a token with 401.
type Invalidator interface {
	Invalidate(ctx context.Context, rejected string)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; its Timeout is left alone.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

type binding struct {
	tokens     TokenSource
	invalidate Invalidator
}

// Client sends JSON requests to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	session atomic.Pointer[binding]
}

// ShouldInvalidate decides whether a response ends the session: only a 401
// for a request that carried a token and was not marked otherwise.
func ShouldInvalidate(status int, sentToken string, suppressed bool) bool {
	return status == http.StatusUnauthorized && sentToken != "" && !suppressed
}

func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid base url %q: %w", opts.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("transport: base url %q must be http or https", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    hc,
		log:     opts.Logger,
	}, nil
}

// Bind connects the client to the session. Until Bind is called requests are
// sent without a token and 401s are only returned.
func (c *Client) Bind(tokens TokenSource, inv Invalidator) {
	c.session.Store(&binding{tokens: tokens, invalidate: inv})
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends body (JSON-encoded when non-nil) to path and decodes a 2xx
// response into out (when non-nil). Non-2xx responses yield *APIError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	token := c.attachToken(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Str("request_id", req.Header.Get(requestIDHeader)).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: parseDetail(raw),
			Body:    raw,
		}
		if ShouldInvalidate(resp.StatusCode, token, invalidationSuppressed(ctx)) {
			c.invalidate(ctx, token)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

// attachToken sets the Authorization header and returns the token sent.
func (c *Client) attachToken(ctx context.Context, req *http.Request) string {
	token, ok := tokenOverride(ctx)
	if !ok {
		if b := c.session.Load(); b != nil && b.tokens != nil {
			token = b.tokens.Token()
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return token
}

// invalidate runs the session callback detached from the caller's
// cancellation so the logout completes even if the request context ends.
func (c *Client) invalidate(ctx context.Context, token string) {
	b := c.session.Load()
	if b == nil || b.invalidate == nil {
		return
	}
	metrics.ForcedLogoutsTotal.Inc()
	c.log.Warn().Msg("backend answered 401, ending session")
	b.invalidate.Invalidate(context.WithoutCancel(ctx), token)
}
