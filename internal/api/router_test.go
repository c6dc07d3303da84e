package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/service"
	"github.com/knowcards/appshell/internal/infrastructure/transport"
)

type stubSession struct {
	user *domain.User
}

func (s *stubSession) Login(context.Context, string, string) domain.AuthResult {
	return domain.AuthResult{Success: true}
}

func (s *stubSession) Register(context.Context, string, string, string) domain.AuthResult {
	return domain.AuthResult{Success: true}
}

func (s *stubSession) Logout(context.Context) error     { s.user = nil; return nil }
func (s *stubSession) FetchCurrentUser(context.Context) {}
func (s *stubSession) Initialize(context.Context) error { return nil }
func (s *stubSession) IsAuthenticated() bool            { return s.user != nil }
func (s *stubSession) CurrentUser() *domain.User        { return s.user }
func (s *stubSession) Token() string                    { return "" }
func (s *stubSession) Snapshot() domain.Session         { return domain.Session{User: s.user} }

func (s *stubSession) State() domain.SessionState {
	if s.user != nil {
		return domain.StateAuthenticated
	}
	return domain.StateAnonymous
}

type stubCards struct{ err error }

func (s *stubCards) List(context.Context, domain.CardQuery) ([]domain.Card, error) {
	return []domain.Card{}, s.err
}

func (s *stubCards) Favorites(context.Context, domain.CardQuery) ([]domain.Card, error) {
	return []domain.Card{}, s.err
}

func (s *stubCards) Recent(context.Context, int) ([]domain.Card, error) {
	return []domain.Card{}, s.err
}

func (s *stubCards) Get(_ context.Context, id domain.ID) (*domain.Card, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Card{ID: id}, nil
}

func (s *stubCards) Create(context.Context, domain.CreateCardRequest) (*domain.Card, error) {
	return &domain.Card{ID: "1"}, s.err
}

func (s *stubCards) Update(_ context.Context, id domain.ID, _ domain.UpdateCardRequest) (*domain.Card, error) {
	return &domain.Card{ID: id}, s.err
}

func (s *stubCards) Delete(context.Context, domain.ID) error { return s.err }

type stubNotebooks struct{}

func (stubNotebooks) List(context.Context) ([]domain.Notebook, error) {
	return []domain.Notebook{}, nil
}

func (stubNotebooks) Default(context.Context) (*domain.Notebook, error) {
	return nil, domain.ErrNotFound
}

func (stubNotebooks) Create(context.Context, domain.CreateNotebookRequest) (*domain.Notebook, error) {
	return &domain.Notebook{}, nil
}

func (stubNotebooks) Update(_ context.Context, id domain.ID, _ domain.UpdateNotebookRequest) (*domain.Notebook, error) {
	return &domain.Notebook{ID: id}, nil
}

func (stubNotebooks) Delete(context.Context, domain.ID) error { return nil }

type stubMedia struct{}

func (stubMedia) List(context.Context, domain.MediaQuery) ([]domain.MediaItem, error) {
	return []domain.MediaItem{{ID: "7", Title: "Dune"}}, nil
}

func (stubMedia) Get(_ context.Context, id domain.ID) (*domain.MediaItem, error) {
	return &domain.MediaItem{ID: id}, nil
}

func (stubMedia) Create(context.Context, domain.CreateMediaRequest) (*domain.MediaItem, error) {
	return &domain.MediaItem{}, nil
}

func (stubMedia) Update(_ context.Context, id domain.ID, _ domain.UpdateMediaRequest) (*domain.MediaItem, error) {
	return &domain.MediaItem{ID: id}, nil
}

func (stubMedia) Delete(context.Context, domain.ID) error { return nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(session *stubSession, cards *stubCards) *echo.Echo {
	return NewRouter(Deps{
		Session:   session,
		Cards:     cards,
		Notebooks: stubNotebooks{},
		Media:     stubMedia{},
		Store:     okPinger{},
		Logger:    zerolog.Nop(),
	})
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_GuardedNavigation(t *testing.T) {
	anonymous := newTestRouter(&stubSession{}, &stubCards{})
	signedIn := newTestRouter(&stubSession{user: &domain.User{ID: "1"}}, &stubCards{})

	tests := []struct {
		name     string
		e        *echo.Echo
		path     string
		code     int
		location string
	}{
		{"root redirects to landing", signedIn, "/", http.StatusFound, "/dashboard"},
		{"protected as anonymous", anonymous, "/profile", http.StatusFound, "/auth"},
		{"card detail as anonymous", anonymous, "/cards/7", http.StatusFound, "/auth"},
		{"protected as user", signedIn, "/profile", http.StatusOK, ""},
		{"media as user", signedIn, "/media?media_type=book", http.StatusOK, ""},
		{"media as anonymous", anonymous, "/media", http.StatusFound, "/auth"},
		{"guest page as user", signedIn, "/auth", http.StatusFound, "/dashboard"},
		{"guest page as anonymous", anonymous, "/auth", http.StatusOK, ""},
		{"unknown path", anonymous, "/does/not/exist", http.StatusNotFound, ""},
		{"liveness", anonymous, "/health", http.StatusOK, ""},
		{"readiness", anonymous, "/health/ready", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(tt.e, http.MethodGet, tt.path)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d (%s)", tt.code, rec.Code, rec.Body.String())
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tt.location {
				t.Fatalf("expected location %q, got %q", tt.location, loc)
			}
		})
	}
}

func TestRouter_LogoutAlwaysReachable(t *testing.T) {
	session := &stubSession{user: &domain.User{ID: "1"}}
	e := newTestRouter(session, &stubCards{})

	rec := do(e, http.MethodPost, "/auth/logout")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if session.IsAuthenticated() {
		t.Fatalf("expected session to be cleared")
	}
	if rec := do(e, http.MethodPost, "/auth/logout"); rec.Code != http.StatusSeeOther {
		t.Fatalf("logout while anonymous: expected 303, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	e := newTestRouter(&stubSession{}, &stubCards{})
	do(e, http.MethodGet, "/profile")

	rec := do(e, http.MethodGet, "/metrics")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "shell_requests_total") {
		t.Fatalf("expected echo request metrics")
	}
	if !strings.Contains(body, "appshell_guard_decisions_total") {
		t.Fatalf("expected guard decision metrics")
	}
}

func TestRouter_Swagger(t *testing.T) {
	e := newTestRouter(&stubSession{}, &stubCards{})

	rec := do(e, http.MethodGet, "/swagger/doc.json")

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/cards/{id}") {
		t.Fatalf("expected swagger document, got %d", rec.Code)
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		location string
		body     string
	}{
		{"backend 404", &transport.APIError{Status: 404, Message: "Knowledge card not found"}, http.StatusNotFound, "", "Knowledge card not found"},
		{"backend 403", &transport.APIError{Status: 403}, http.StatusForbidden, "", "access forbidden"},
		{"backend 422", &transport.APIError{Status: 422, Message: "field required"}, http.StatusUnprocessableEntity, "", "field required"},
		{"backend 500", &transport.APIError{Status: 500}, http.StatusBadGateway, "", "backend error"},
		{"backend 401", &transport.APIError{Status: 401}, http.StatusFound, "/auth", ""},
		{"session ended", domain.ErrNotAuthenticated, http.StatusFound, "/auth", ""},
		{"unreachable", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, http.StatusBadGateway, "", "backend unavailable"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "", "invalid payload"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "", "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/cards/1", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tt.location {
				t.Fatalf("expected location %q, got %q", tt.location, loc)
			}
			if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
				t.Fatalf("expected body to contain %q, got %s", tt.body, rec.Body.String())
			}
		})
	}
}

func TestViewRoutes_EveryRouteHasAView(t *testing.T) {
	routes := viewRoutes(Deps{Session: &stubSession{}, Cards: &stubCards{}, Notebooks: stubNotebooks{}, Media: stubMedia{}})

	if len(routes) != len(service.Routes()) {
		t.Fatalf("expected %d routes, got %d", len(service.Routes()), len(routes))
	}
	for _, r := range routes {
		if len(r.endpoints) == 0 {
			t.Fatalf("route %q has no view", r.Name)
		}
	}
}

func TestLazy_BuildsOnce(t *testing.T) {
	builds := 0
	h := lazy(func() echo.HandlerFunc {
		builds++
		return func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	})
	if builds != 0 {
		t.Fatalf("handler built before first request")
	}

	e := echo.New()
	for range 3 {
		_ = h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	}
	if builds != 1 {
		t.Fatalf("expected one build, got %d", builds)
	}
}
