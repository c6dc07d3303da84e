package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	subcommands := []string{"serve", "login", "register", "logout", "whoami", "status", "routes", "cards", "notebooks", "media"}
	for _, sub := range subcommands {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	cmd.Version = "test-version"
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "test-version")
}

// backend answers the auth endpoints for one account whose password is "x".
type backend struct {
	logouts atomic.Int32

	mu             sync.Mutex
	mediaQuery     string
	notebookUpdate map[string]any
}

func (b *backend) recorded() (string, map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mediaQuery, b.notebookUpdate
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	user := map[string]any{"id": 1, "email": "a@b.com", "full_name": "Ada", "is_active": true}
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "x" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"access_token": "T1", "token_type": "bearer", "user": user})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T1" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		reply(w, http.StatusOK, user)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		b.logouts.Add(1)
		reply(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /cards", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T1" {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		reply(w, http.StatusOK, []map[string]any{{"id": 1, "title": "Go", "tags": "go,lang"}})
	})
	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer T1" {
				reply(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("GET /media", authorized(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.mediaQuery = r.URL.RawQuery
		b.mu.Unlock()
		reply(w, http.StatusOK, []map[string]any{{"id": 7, "title": "Dune", "media_type": "book", "tags": "scifi"}})
	}))
	mux.HandleFunc("GET /media/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			reply(w, http.StatusNotFound, map[string]string{"detail": "Media item not found"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"id": 7, "title": "Dune", "media_type": "book"})
	}))
	mux.HandleFunc("GET /notebooks/default", authorized(func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]any{"id": 3, "name": "Inbox", "is_default": true})
	}))
	mux.HandleFunc("PUT /notebooks/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.notebookUpdate = req
		b.mu.Unlock()
		reply(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "name": req["name"]})
	}))
	mux.HandleFunc("DELETE /notebooks/{id}", authorized(func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]string{"message": "Notebook deleted successfully"})
	}))
	return mux
}

// setup points the CLI at a fresh backend and a private token file.
func setup(t *testing.T) (*backend, string) {
	t.Helper()

	b := &backend{}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("ENV", "test")
	t.Setenv("TOKEN_STORE", "file")
	t.Setenv("TOKEN_FILE", tokenFile)
	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv(passwordEnv, "")

	return b, tokenFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	b, tokenFile := setup(t)

	out, err := run(t, "login", "--email", "a@b.com", "--password", "x")
	require.NoError(t, err)
	assert.Contains(t, out, `"state": "authenticated"`)

	saved, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "T1", string(saved))

	out, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, `"email": "a@b.com"`)

	out, err = run(t, "cards", "list", "--limit", "5")
	require.NoError(t, err)
	var cards []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, []any{"go", "lang"}, cards[0]["tags"])

	out, err = run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, `"state": "anonymous"`)
	assert.Equal(t, int32(1), b.logouts.Load())

	_, err = os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(err), "token file should be removed")

	_, err = run(t, "whoami")
	assert.Error(t, err)
}

func TestLogin_BadCredentials(t *testing.T) {
	_, tokenFile := setup(t)

	out, err := run(t, "login", "--email", "a@b.com", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, out, "Incorrect email or password")
	assert.Contains(t, out, `"state": "anonymous"`)

	_, statErr := os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogin_InvalidInput(t *testing.T) {
	setup(t)

	_, err := run(t, "login", "--email", "not-an-email", "--password", "x")
	assert.ErrorContains(t, err, "invalid credentials input")
}

func TestRejectedPersistedToken(t *testing.T) {
	_, tokenFile := setup(t)
	require.NoError(t, os.WriteFile(tokenFile, []byte("stale"), 0o600))

	out, err := run(t, "status")
	require.NoError(t, err)

	var status statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "anonymous", status.State)
	assert.False(t, status.Authenticated)
	assert.Equal(t, "file", status.Store)

	_, statErr := os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(statErr), "rejected token should be cleared")
}

func TestRoutes_Anonymous(t *testing.T) {
	setup(t)

	out, err := run(t, "--ephemeral", "routes")
	require.NoError(t, err)

	var rows []routeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rows))

	byName := map[string]routeOutput{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.Equal(t, "redirect", byName["dashboard"].Decision)
	assert.Equal(t, "/auth", byName["dashboard"].Target)
	assert.Equal(t, "/auth", byName["home"].Target)
	assert.Equal(t, "proceed", byName["auth"].Decision)
	assert.Equal(t, "proceed", byName["NotFound"].Decision)
}

func TestRoutes_ByName(t *testing.T) {
	setup(t)

	out, err := run(t, "--ephemeral", "routes", "card-detail")
	require.NoError(t, err)

	var row routeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, "/cards/:id", row.Path)
	assert.Equal(t, "redirect", row.Decision)
	assert.Equal(t, "/auth", row.Target)

	_, err = run(t, "--ephemeral", "routes", "nope")
	assert.ErrorContains(t, err, `unknown route "nope"`)
}

func TestCards_RequireSession(t *testing.T) {
	setup(t)

	_, err := run(t, "--ephemeral", "cards", "list")
	assert.ErrorContains(t, err, "requires a session")
}

func TestCards_CreateValidation(t *testing.T) {
	setup(t)

	_, err := run(t, "--ephemeral", "cards", "create", "--content", "body")
	assert.ErrorContains(t, err, "invalid card")

	_, err = run(t, "--ephemeral", "cards", "create", "--title", "t", "--content", "c", "--content-type", "pdf")
	assert.ErrorContains(t, err, "invalid card")
}

func TestMedia_ListAndGet(t *testing.T) {
	b, _ := setup(t)
	_, err := run(t, "login", "--email", "a@b.com", "--password", "x")
	require.NoError(t, err)

	out, err := run(t, "media", "list", "--type", "book", "--tags", "scifi, classic", "--limit", "10")
	require.NoError(t, err)
	query, _ := b.recorded()
	assert.Equal(t, "limit=10&media_type=book&tags=scifi%2Cclassic", query)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0]["title"])

	out, err = run(t, "media", "get", "7")
	require.NoError(t, err)
	assert.Contains(t, out, `"media_type": "book"`)

	_, err = run(t, "media", "get", "8")
	assert.ErrorContains(t, err, "Media item not found")
}

func TestMedia_RequireSession(t *testing.T) {
	setup(t)

	_, err := run(t, "--ephemeral", "media", "list")
	assert.ErrorContains(t, err, "requires a session")
}

func TestMedia_CreateValidation(t *testing.T) {
	setup(t)

	_, err := run(t, "--ephemeral", "media", "create", "--type", "book")
	assert.ErrorContains(t, err, "invalid media item")

	_, err = run(t, "--ephemeral", "media", "create", "--title", "Dune", "--rating", "11")
	assert.ErrorContains(t, err, "invalid media item")
}

func TestNotebooks_DefaultUpdateDelete(t *testing.T) {
	b, _ := setup(t)
	_, err := run(t, "login", "--email", "a@b.com", "--password", "x")
	require.NoError(t, err)

	out, err := run(t, "notebooks", "default")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Inbox"`)

	out, err = run(t, "notebooks", "update", "3", "--name", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Work"`)
	_, update := b.recorded()
	assert.Equal(t, map[string]any{"name": "Work"}, update)

	_, err = run(t, "notebooks", "update", "3", "--color", "blue")
	assert.ErrorContains(t, err, "invalid notebook update")

	out, err = run(t, "notebooks", "delete", "3")
	require.NoError(t, err)
	assert.Contains(t, out, `"deleted": "3"`)
}
