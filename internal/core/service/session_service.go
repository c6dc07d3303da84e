package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
)

var errMissingToken = errors.New("credential exchange returned no access token")

// TransitionFunc observes session state changes. It runs after the state
// lock is released.
type TransitionFunc func(from, to domain.SessionState)

// SessionService owns the token and current user of the process and is the
// only writer of the persisted token.
//
// Login, Register and Logout are serialised end to end so that a logout can
// never interleave with a half-applied login. FetchCurrentUser is not: it
// may run from inside a transport call that forces a logout, so it relies on
// a generation counter to drop results for a token that is no longer held.
type SessionService struct {
	auth     ports.AuthGateway
	store    ports.TokenStore
	messages Messages
	log      zerolog.Logger
	now      func() time.Time

	opMu sync.Mutex

	mu          sync.RWMutex
	token       string
	user        *domain.User
	loading     int
	generation  uint64
	initialized bool
	observers   []TransitionFunc
}

func NewSessionService(auth ports.AuthGateway, store ports.TokenStore, messages Messages, log zerolog.Logger) *SessionService {
	if messages == (Messages{}) {
		messages = MessagesFor("en")
	}
	return &SessionService{
		auth:     auth,
		store:    store,
		messages: messages,
		log:      log,
		now:      time.Now,
	}
}

// OnTransition registers an observer for state changes.
func (s *SessionService) OnTransition(fn TransitionFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Login exchanges credentials for a token. On failure the session is left
// exactly as it was and the result carries a displayable message.
func (s *SessionService) Login(ctx context.Context, email, password string) domain.AuthResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	defer s.beginLoading()()

	resp, err := s.auth.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.log.Info().Err(err).Str("email", email).Msg("login rejected")
		return s.failure(err, s.messages.LoginFailed)
	}
	if err := s.establish(ctx, resp); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login response unusable")
		return s.failure(err, s.messages.LoginFailed)
	}

	s.log.Info().Str("user_id", s.CurrentUser().ID.String()).Msg("logged in")
	return domain.AuthResult{Success: true}
}

// Register creates an account and signs it in. A backend that answers the
// registration with the user record alone gets a follow-up login with the
// same credentials.
func (s *SessionService) Register(ctx context.Context, email, password, fullName string) domain.AuthResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	defer s.beginLoading()()

	resp, err := s.auth.Register(ctx, domain.RegisterRequest{Email: email, Password: password, FullName: fullName})
	if err != nil {
		s.log.Info().Err(err).Str("email", email).Msg("registration rejected")
		return s.failure(err, s.messages.RegistrationFailed)
	}

	if resp == nil {
		resp = &domain.AuthResponse{}
	}
	if resp.AccessToken == "" {
		registered := resp.User
		resp, err = s.auth.Login(ctx, domain.LoginRequest{Email: email, Password: password})
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("login after registration failed")
			return s.failure(err, s.messages.RegistrationFailed)
		}
		if resp != nil && resp.User == nil {
			resp.User = registered
		}
	}

	if err := s.establish(ctx, resp); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("registration response unusable")
		return s.failure(err, s.messages.RegistrationFailed)
	}

	s.log.Info().Str("user_id", s.CurrentUser().ID.String()).Msg("registered")
	return domain.AuthResult{Success: true}
}

// Logout asks the backend to drop the token (best effort) and then clears
// the session and the persisted token. Only a failure to clear the store is
// reported.
func (s *SessionService) Logout(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.logoutLocked(ctx)
}

// Invalidate is handed to the transport and runs when a response carried
// 401 for the given token. A rejection for a token the session no longer
// holds is stale and ignored.
func (s *SessionService) Invalidate(ctx context.Context, rejected string) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Token() != rejected {
		s.log.Debug().Msg("ignoring 401 for a token no longer held")
		return
	}
	s.log.Warn().Msg("backend rejected the session token, logging out")
	if err := s.logoutLocked(ctx); err != nil {
		s.log.Error().Err(err).Msg("forced logout could not clear persisted token")
	}
}

func (s *SessionService) logoutLocked(ctx context.Context) error {
	if s.Token() != "" {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}

	s.set("", nil)

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: clear persisted token: %w", err)
	}
	return nil
}

// FetchCurrentUser loads the user for the held token. Without a token it
// does nothing; on failure it logs out.
func (s *SessionService) FetchCurrentUser(ctx context.Context) {
	s.mu.RLock()
	token, gen := s.token, s.generation
	s.mu.RUnlock()

	if token == "" {
		return
	}

	user, err := s.auth.Me(ctx, "")
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to fetch current user")
		s.Invalidate(ctx, token)
		return
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.log.Debug().Msg("discarding user fetched for a replaced token")
		return
	}
	from := s.stateLocked()
	s.user = user
	to := s.stateLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	s.notify(observers, from, to)
}

// Initialize restores a persisted token once per process. A JWT whose exp
// claim has passed is discarded without a round trip.
func (s *SessionService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	s.mu.Unlock()

	token, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("initialize: load persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	if err := checkExpiry(token, s.now()); err != nil {
		s.log.Info().Err(err).Msg("discarding persisted token")
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("initialize: clear expired token: %w", err)
		}
		return nil
	}

	s.set(token, nil)
	s.FetchCurrentUser(ctx)
	return nil
}

func (s *SessionService) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

func (s *SessionService) State() domain.SessionState {
	return s.Snapshot().State()
}

// Token returns the bearer token, which may be set while the user is still
// loading. Guards must use IsAuthenticated instead.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Session{Token: s.token, Loading: s.loading > 0}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// establish commits a successful credential exchange. When the response has
// no user record it is fetched with the new token first, so callers never
// observe the token without the user.
func (s *SessionService) establish(ctx context.Context, resp *domain.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return errMissingToken
	}

	user := resp.User
	if user == nil {
		var err error
		if user, err = s.auth.Me(ctx, resp.AccessToken); err != nil {
			return fmt.Errorf("fetch user for new token: %w", err)
		}
	}

	if err := s.store.Save(ctx, resp.AccessToken); err != nil {
		s.log.Warn().Err(err).Msg("could not persist token; session will not survive a restart")
	}
	s.set(resp.AccessToken, user)
	return nil
}

func (s *SessionService) set(token string, user *domain.User) {
	s.mu.Lock()
	from := s.stateLocked()
	s.token = token
	s.user = user
	s.generation++
	to := s.stateLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	s.notify(observers, from, to)
}

func (s *SessionService) beginLoading() func() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.loading--
		s.mu.Unlock()
	}
}

func (s *SessionService) stateLocked() domain.SessionState {
	return domain.Session{Token: s.token, User: s.user}.State()
}

func (s *SessionService) observersLocked() []TransitionFunc {
	if len(s.observers) == 0 {
		return nil
	}
	return append([]TransitionFunc(nil), s.observers...)
}

func (s *SessionService) notify(observers []TransitionFunc, from, to domain.SessionState) {
	if from == to {
		return
	}
	s.log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("session transition")
	for _, fn := range observers {
		fn(from, to)
	}
}

// failure converts an error into a displayable result. The backend's detail
// message wins over the fallback.
func (s *SessionService) failure(err error, fallback string) domain.AuthResult {
	var d interface{ Detail() string }
	if errors.As(err, &d) && d.Detail() != "" {
		return domain.AuthResult{Error: d.Detail()}
	}
	return domain.AuthResult{Error: fallback}
}
