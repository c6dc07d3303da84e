package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/knowcards/appshell/internal/core/domain"
)

// CardsClient implements ports.CardService. Query parameters are forwarded
// as given; paging is left to the server.
type CardsClient struct {
	r Requester
}

func NewCardsClient(r Requester) *CardsClient {
	return &CardsClient{r: r}
}

func (c *CardsClient) List(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	return c.list(ctx, "/cards", encodeCardQuery(q))
}

func (c *CardsClient) Favorites(ctx context.Context, q domain.CardQuery) ([]domain.Card, error) {
	return c.list(ctx, "/cards/favorites", encodeCardQuery(q))
}

func (c *CardsClient) Recent(ctx context.Context, limit int) ([]domain.Card, error) {
	return c.list(ctx, "/cards/recent", encodeCardQuery(domain.CardQuery{Limit: limit}))
}

func (c *CardsClient) Get(ctx context.Context, id domain.ID) (*domain.Card, error) {
	if id == "" {
		return nil, errEmptyID
	}
	var card domain.Card
	if err := c.r.Get(ctx, cardPath(id), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *CardsClient) Create(ctx context.Context, req domain.CreateCardRequest) (*domain.Card, error) {
	var card domain.Card
	if err := c.r.Post(ctx, "/cards", req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *CardsClient) Update(ctx context.Context, id domain.ID, req domain.UpdateCardRequest) (*domain.Card, error) {
	if id == "" {
		return nil, errEmptyID
	}
	var card domain.Card
	if err := c.r.Put(ctx, cardPath(id), req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *CardsClient) Delete(ctx context.Context, id domain.ID) error {
	if id == "" {
		return errEmptyID
	}
	return c.r.Delete(ctx, cardPath(id))
}

func (c *CardsClient) list(ctx context.Context, path string, q url.Values) ([]domain.Card, error) {
	cards := []domain.Card{}
	if err := c.r.Get(ctx, path, q, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func cardPath(id domain.ID) string {
	return "/cards/" + url.PathEscape(id.String())
}

func encodeCardQuery(q domain.CardQuery) url.Values {
	v := url.Values{}
	setInt := func(key string, n int) {
		if n > 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}
	setStr := func(key, s string) {
		if s != "" {
			v.Set(key, s)
		}
	}

	setInt("skip", q.Skip)
	setInt("page", q.Page)
	setInt("limit", q.Limit)
	setStr("search", q.Search)
	setStr("tags", q.Tags.String())
	setStr("category", q.Category)
	setStr("status", q.Status)
	return v
}
