package client

import (
	"context"
	"net/url"

	"github.com/knowcards/appshell/internal/core/domain"
)

// NotebooksClient implements ports.NotebookService.
type NotebooksClient struct {
	r Requester
}

func NewNotebooksClient(r Requester) *NotebooksClient {
	return &NotebooksClient{r: r}
}

func (c *NotebooksClient) List(ctx context.Context) ([]domain.Notebook, error) {
	notebooks := []domain.Notebook{}
	if err := c.r.Get(ctx, "/notebooks", nil, &notebooks); err != nil {
		return nil, err
	}
	return notebooks, nil
}

// Default fetches the notebook new cards are filed under. The backend
// answers 404 when none is marked.
func (c *NotebooksClient) Default(ctx context.Context) (*domain.Notebook, error) {
	var nb domain.Notebook
	if err := c.r.Get(ctx, "/notebooks/default", nil, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

func (c *NotebooksClient) Create(ctx context.Context, req domain.CreateNotebookRequest) (*domain.Notebook, error) {
	var nb domain.Notebook
	if err := c.r.Post(ctx, "/notebooks", req, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

func (c *NotebooksClient) Update(ctx context.Context, id domain.ID, req domain.UpdateNotebookRequest) (*domain.Notebook, error) {
	if id == "" {
		return nil, errEmptyID
	}
	var nb domain.Notebook
	if err := c.r.Put(ctx, notebookPath(id), req, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

func (c *NotebooksClient) Delete(ctx context.Context, id domain.ID) error {
	if id == "" {
		return errEmptyID
	}
	return c.r.Delete(ctx, notebookPath(id))
}

func notebookPath(id domain.ID) string {
	return "/notebooks/" + url.PathEscape(id.String())
}
