package ports

import (
	"context"

	"github.com/knowcards/appshell/internal/core/domain"
)

// CardService is the cards half of the resource client. Errors from the
// transport are returned unchanged.
type CardService interface {
	List(ctx context.Context, q domain.CardQuery) ([]domain.Card, error)
	Favorites(ctx context.Context, q domain.CardQuery) ([]domain.Card, error)
	Recent(ctx context.Context, limit int) ([]domain.Card, error)
	Get(ctx context.Context, id domain.ID) (*domain.Card, error)
	Create(ctx context.Context, req domain.CreateCardRequest) (*domain.Card, error)
	Update(ctx context.Context, id domain.ID, req domain.UpdateCardRequest) (*domain.Card, error)
	Delete(ctx context.Context, id domain.ID) error
}

// NotebookService is the notebooks half of the resource client. Default
// returns an error matching domain.ErrNotFound when no notebook is marked
// as the default.
type NotebookService interface {
	List(ctx context.Context) ([]domain.Notebook, error)
	Default(ctx context.Context) (*domain.Notebook, error)
	Create(ctx context.Context, req domain.CreateNotebookRequest) (*domain.Notebook, error)
	Update(ctx context.Context, id domain.ID, req domain.UpdateNotebookRequest) (*domain.Notebook, error)
	Delete(ctx context.Context, id domain.ID) error
}

// MediaService is the media library client.
type MediaService interface {
	List(ctx context.Context, q domain.MediaQuery) ([]domain.MediaItem, error)
	Get(ctx context.Context, id domain.ID) (*domain.MediaItem, error)
	Create(ctx context.Context, req domain.CreateMediaRequest) (*domain.MediaItem, error)
	Update(ctx context.Context, id domain.ID, req domain.UpdateMediaRequest) (*domain.MediaItem, error)
	Delete(ctx context.Context, id domain.ID) error
}
