package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowcards/appshell/internal/api/metrics"
	"github.com/knowcards/appshell/internal/core/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recordingInvalidator struct {
	mu       sync.Mutex
	rejected []string
	ctxErr   error
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, token)
	r.ctxErr = ctx.Err()
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL + "/api/v1/", Logger: zerolog.Nop()})
	require.NoError(t, err)
	return c
}

func TestShouldInvalidate(t *testing.T) {
	assert.True(t, ShouldInvalidate(http.StatusUnauthorized, "T1", false))
	assert.False(t, ShouldInvalidate(http.StatusUnauthorized, "T1", true))
	assert.False(t, ShouldInvalidate(http.StatusUnauthorized, "", false))
	assert.False(t, ShouldInvalidate(http.StatusForbidden, "T1", false))
	assert.False(t, ShouldInvalidate(http.StatusOK, "T1", false))
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "://"})
	require.Error(t, err)
}

func TestDo_AttachesBearerAndRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/cards", r.URL.Path)
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 7, "title": "x"}})
	})
	c.Bind(staticToken("T1"), nil)

	var out []domain.Card
	err := c.Get(context.Background(), "/cards", url.Values{"page": {"2"}}, &out)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.ID("7"), out[0].ID)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	c.Bind(staticToken(""), nil)

	require.NoError(t, c.Delete(context.Background(), "/cards/1"))
}

func TestDo_WithTokenOverride(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer NEW", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})
	inv := &recordingInvalidator{}
	c.Bind(staticToken("OLD"), inv)

	err := c.Get(WithToken(context.Background(), "NEW"), "/auth/me", nil, nil)

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, inv.rejected, "request with an explicit token must not end the session")
}

func TestDo_PostsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Go", body["name"])
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "n1", "name": "Go"})
	})

	var nb domain.Notebook
	require.NoError(t, c.Post(context.Background(), "/notebooks", domain.CreateNotebookRequest{Name: "Go"}, &nb))
	assert.Equal(t, domain.ID("n1"), nb.ID)
}

func TestDo_401InvalidatesSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})
	inv := &recordingInvalidator{}
	c.Bind(staticToken("T1"), inv)
	before := testutil.ToFloat64(metrics.ForcedLogoutsTotal)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := c.Get(ctx, "/cards", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Could not validate credentials", apiErr.Detail())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, []string{"T1"}, inv.rejected)
	assert.NoError(t, inv.ctxErr)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ForcedLogoutsTotal))
}

func TestDo_401SuppressedForMarkedRequests(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	inv := &recordingInvalidator{}
	c.Bind(staticToken("T1"), inv)

	err := c.Post(WithoutInvalidation(context.Background()), "/auth/login", map[string]string{}, nil)

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, inv.rejected)
}

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			inv := &recordingInvalidator{}
			c.Bind(staticToken("T1"), inv)

			err := c.Get(context.Background(), "/cards/9", nil, nil)

			assert.ErrorIs(t, err, tt.target)
			assert.False(t, errors.Is(err, domain.ErrUnauthorized))
			assert.Empty(t, inv.rejected)
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/cards", nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestParseDetail(t *testing.T) {
	tests := map[string]string{
		`{"detail":"bad credentials"}`: "bad credentials",
		`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"msg":"field required"}]}`: "value is not a valid email address; field required",
		`{"error":"card not found"}`: "card not found",
		`{"message":"boom"}`:         "boom",
		`not json`:                   "",
		``:                           "",
	}
	for body, want := range tests {
		assert.Equal(t, want, parseDetail([]byte(body)), body)
	}
}
