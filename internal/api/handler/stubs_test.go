package handler

import (
	"context"

	"github.com/knowcards/appshell/internal/core/domain"
)

type stubSession struct {
	loginFn    func(ctx context.Context, email, password string) domain.AuthResult
	registerFn func(ctx context.Context, email, password, fullName string) domain.AuthResult
	logoutFn   func(ctx context.Context) error
	user       *domain.User
	state      domain.SessionState
}

func (s *stubSession) Login(ctx context.Context, email, password string) domain.AuthResult {
	return s.loginFn(ctx, email, password)
}

func (s *stubSession) Register(ctx context.Context, email, password, fullName string) domain.AuthResult {
	return s.registerFn(ctx, email, password, fullName)
}

func (s *stubSession) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *stubSession) FetchCurrentUser(context.Context) {}
func (s *stubSession) Initialize(context.Context) error { return nil }
func (s *stubSession) IsAuthenticated() bool            { return s.user != nil }
func (s *stubSession) State() domain.SessionState       { return s.state }
func (s *stubSession) CurrentUser() *domain.User        { return s.user }
func (s *stubSession) Token() string                    { return "" }

func (s *stubSession) Snapshot() domain.Session {
	return domain.Session{User: s.user}
}

type stubCards struct {
	listFn   func(ctx context.Context, q domain.CardQuery) ([]domain.Card, error)
	recentFn func(ctx context.Context, limit int) ([]domain.Card, error)
	getFn    func(ctx context.Context, id domain.ID) (*domain.Card, error)
	createFn func(ctx context.Context, req domain.CreateCardRequest) (*domain.Card, error)
	updateFn func(ctx context.Context, id domain.ID, req domain.UpdateCardRequest) (*domain.Card, error)
	deleteFn func(ctx context.Context, id domain.ID) error
}

func (s *stubCards) List(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	return s.listFn(ctx, q)
}

func (s *stubCards) Favorites(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	return s.listFn(ctx, q)
}

func (s *stubCards) Recent(ctx context.Context, limit int) ([]domain.Card, error) {
	return s.recentFn(ctx, limit)
}

func (s *stubCards) Get(ctx context.Context, id domain.ID) (*domain.Card, error) {
	return s.getFn(ctx, id)
}

func (s *stubCards) Create(ctx context.Context, req domain.CreateCardRequest) (*domain.Card, error) {
	return s.createFn(ctx, req)
}

func (s *stubCards) Update(ctx context.Context, id domain.ID, req domain.UpdateCardRequest) (*domain.Card, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubCards) Delete(ctx context.Context, id domain.ID) error {
	return s.deleteFn(ctx, id)
}

type stubNotebooks struct {
	notebooks []domain.Notebook
	def       *domain.Notebook
	defErr    error
	err       error
}

func (s *stubNotebooks) List(context.Context) ([]domain.Notebook, error) {
	return s.notebooks, s.err
}

func (s *stubNotebooks) Create(_ context.Context, req domain.CreateNotebookRequest) (*domain.Notebook, error) {
	return &domain.Notebook{ID: "n1", Name: req.Name}, s.err
}

func (s *stubNotebooks) Default(context.Context) (*domain.Notebook, error) {
	if s.defErr != nil {
		return nil, s.defErr
	}
	if s.def == nil {
		return nil, domain.ErrNotFound
	}
	return s.def, nil
}

func (s *stubNotebooks) Update(_ context.Context, id domain.ID, _ domain.UpdateNotebookRequest) (*domain.Notebook, error) {
	return &domain.Notebook{ID: id}, s.err
}

func (s *stubNotebooks) Delete(context.Context, domain.ID) error {
	return s.err
}

type stubMedia struct {
	items []domain.MediaItem
	err   error
	query domain.MediaQuery
}

func (s *stubMedia) List(_ context.Context, q domain.MediaQuery) ([]domain.MediaItem, error) {
	s.query = q
	return s.items, s.err
}

func (s *stubMedia) Get(_ context.Context, id domain.ID) (*domain.MediaItem, error) {
	return &domain.MediaItem{ID: id}, s.err
}

func (s *stubMedia) Create(_ context.Context, req domain.CreateMediaRequest) (*domain.MediaItem, error) {
	return &domain.MediaItem{ID: "m1", Title: req.Title}, s.err
}

func (s *stubMedia) Update(_ context.Context, id domain.ID, _ domain.UpdateMediaRequest) (*domain.MediaItem, error) {
	return &domain.MediaItem{ID: id}, s.err
}

func (s *stubMedia) Delete(context.Context, domain.ID) error {
	return s.err
}
