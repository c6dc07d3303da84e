package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
)

// CardHandler renders the card views over the resource client.
type CardHandler struct {
	cards     ports.CardService
	notebooks ports.NotebookService
}

func NewCardHandler(cards ports.CardService, notebooks ports.NotebookService) *CardHandler {
	return &CardHandler{cards: cards, notebooks: notebooks}
}

// --- Request / View types ---

type listCardsQuery struct {
	Skip     int         `query:"skip"`
	Page     int         `query:"page"`
	Limit    int         `query:"limit"`
	Search   string      `query:"search"`
	Tags     domain.Tags `query:"tags"`
	Category string      `query:"category"`
	Status   string      `query:"status"`
}

type cardForm struct {
	Title       string      `json:"title" form:"title" validate:"required,max=200"`
	Content     string      `json:"content" form:"content" validate:"required"`
	ContentType string      `json:"content_type" form:"content_type" validate:"omitempty,oneof=markdown text html"`
	Summary     string      `json:"summary" form:"summary"`
	Tags        domain.Tags `json:"tags" form:"tags"`
	Category    string      `json:"category" form:"category"`
	Priority    int         `json:"priority" form:"priority" validate:"gte=0"`
	IsFavorite  bool        `json:"is_favorite" form:"is_favorite"`
	IsPublic    bool        `json:"is_public" form:"is_public"`
	NotebookID  domain.ID   `json:"notebook_id" form:"notebook_id"`
}

type cardsView struct {
	View  string        `json:"view"`
	Cards []domain.Card `json:"cards"`
}

type newCardView struct {
	View              string            `json:"view"`
	Notebooks         []domain.Notebook `json:"notebooks"`
	DefaultNotebookID domain.ID         `json:"default_notebook_id,omitempty"`
}

type cardView struct {
	View string       `json:"view"`
	Card *domain.Card `json:"card"`
}

// List handles GET /cards. Query parameters are forwarded to the backend.
//
// @Summary      List cards
// @Tags         cards
// @Produce      json
// @Param        skip      query     int     false  "Offset"
// @Param        page      query     int     false  "Page"
// @Param        limit     query     int     false  "Page size"
// @Param        search    query     string  false  "Full-text search"
// @Param        tags      query     string  false  "Comma separated tags"
// @Param        category  query     string  false  "Category"
// @Param        status    query     string  false  "Status"
// @Success      200       {object}  cardsView
// @Success      302       "Not signed in, redirected to /auth"
// @Failure      502       {object}  map[string]string
// @Router       /cards [get]
func (h *CardHandler) List(c echo.Context) error {
	var q listCardsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	cards, err := h.cards.List(c.Request().Context(), domain.CardQuery{
		Skip:     q.Skip,
		Page:     q.Page,
		Limit:    q.Limit,
		Search:   q.Search,
		Tags:     q.Tags,
		Category: q.Category,
		Status:   q.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cardsView{View: "cards", Cards: cards})
}

// New handles GET /cards/new: the notebooks a new card can be filed under,
// with the user's default notebook preselected when one exists.
//
// @Summary      New-card view
// @Tags         cards
// @Produce      json
// @Success      200  {object}  newCardView
// @Router       /cards/new [get]
func (h *CardHandler) New(c echo.Context) error {
	ctx := c.Request().Context()
	notebooks, err := h.notebooks.List(ctx)
	if err != nil {
		return err
	}

	view := newCardView{View: "new-card", Notebooks: notebooks}
	def, err := h.notebooks.Default(ctx)
	switch {
	case err == nil:
		view.DefaultNotebookID = def.ID
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /cards/new and continues to the created card.
//
// @Summary      Create a card
// @Tags         cards
// @Accept       json
// @Param        body  body      cardForm  true  "Card"
// @Success      303   "Created, redirected to /cards/{id}"
// @Failure      400   {object}  map[string]string
// @Router       /cards/new [post]
func (h *CardHandler) Create(c echo.Context) error {
	var form cardForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	card, err := h.cards.Create(c.Request().Context(), domain.CreateCardRequest{
		Title:       form.Title,
		Content:     form.Content,
		ContentType: form.ContentType,
		Summary:     form.Summary,
		Tags:        form.Tags,
		Category:    form.Category,
		Priority:    form.Priority,
		IsFavorite:  form.IsFavorite,
		IsPublic:    form.IsPublic,
		NotebookID:  form.NotebookID,
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cards/"+card.ID.String())
}

// Show handles GET /cards/:id.
//
// @Summary      Card detail
// @Tags         cards
// @Produce      json
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  cardView
// @Failure      404  {object}  map[string]string
// @Router       /cards/{id} [get]
func (h *CardHandler) Show(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	card, err := h.cards.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cardView{View: "card-detail", Card: card})
}

// Update handles POST /cards/:id with a partial JSON body; absent fields
// are left unchanged.
//
// @Summary      Update a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Card id"
// @Param        body  body      domain.UpdateCardRequest  true  "Changed fields"
// @Success      200   {object}  cardView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cards/{id} [post]
func (h *CardHandler) Update(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	var req domain.UpdateCardRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}

	card, err := h.cards.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cardView{View: "card-detail", Card: card})
}

// Delete handles POST /cards/:id/delete and returns to the card list.
//
// @Summary      Delete a card
// @Tags         cards
// @Param        id   path  string  true  "Card id"
// @Success      303  "Deleted, redirected to /cards"
// @Failure      404  {object}  map[string]string
// @Router       /cards/{id}/delete [post]
func (h *CardHandler) Delete(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return err
	}
	if err := h.cards.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cards")
}
