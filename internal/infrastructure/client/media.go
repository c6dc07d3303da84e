package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/knowcards/appshell/internal/core/domain"
)

// MediaClient implements ports.MediaService.
type MediaClient struct {
	r Requester
}

func NewMediaClient(r Requester) *MediaClient {
	return &MediaClient{r: r}
}

func (c *MediaClient) List(ctx context.Context, q domain.MediaQuery) ([]domain.MediaItem, error) {
	items := []domain.MediaItem{}
	if err := c.r.Get(ctx, "/media", encodeMediaQuery(q), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *MediaClient) Get(ctx context.Context, id domain.ID) (*domain.MediaItem, error) {
	if id == "" {
		return nil, errEmptyID
	}
	var item domain.MediaItem
	if err := c.r.Get(ctx, mediaPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *MediaClient) Create(ctx context.Context, req domain.CreateMediaRequest) (*domain.MediaItem, error) {
	var item domain.MediaItem
	if err := c.r.Post(ctx, "/media", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *MediaClient) Update(ctx context.Context, id domain.ID, req domain.UpdateMediaRequest) (*domain.MediaItem, error) {
	if id == "" {
		return nil, errEmptyID
	}
	var item domain.MediaItem
	if err := c.r.Put(ctx, mediaPath(id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *MediaClient) Delete(ctx context.Context, id domain.ID) error {
	if id == "" {
		return errEmptyID
	}
	return c.r.Delete(ctx, mediaPath(id))
}

func mediaPath(id domain.ID) string {
	return "/media/" + url.PathEscape(id.String())
}

func encodeMediaQuery(q domain.MediaQuery) url.Values {
	v := url.Values{}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for key, s := range map[string]string{
		"media_type": q.MediaType,
		"status":     q.Status,
		"category":   q.Category,
		"tags":       q.Tags.String(),
		"search":     q.Search,
	} {
		if s != "" {
			v.Set(key, s)
		}
	}
	return v
}
