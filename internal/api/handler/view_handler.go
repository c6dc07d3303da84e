package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
)

const dashboardRecentLimit = 5

// ViewHandler renders the session-centric views: dashboard, profile, media
// and not-found.
type ViewHandler struct {
	session   ports.SessionService
	cards     ports.CardService
	notebooks ports.NotebookService
	media     ports.MediaService
}

func NewViewHandler(session ports.SessionService, cards ports.CardService, notebooks ports.NotebookService, media ports.MediaService) *ViewHandler {
	return &ViewHandler{session: session, cards: cards, notebooks: notebooks, media: media}
}

type dashboardView struct {
	View        string            `json:"view"`
	User        *domain.User      `json:"user"`
	RecentCards []domain.Card     `json:"recent_cards"`
	Notebooks   []domain.Notebook `json:"notebooks"`
}

type profileView struct {
	View        string       `json:"view"`
	DisplayName string       `json:"display_name"`
	User        *domain.User `json:"user"`
}

type listMediaQuery struct {
	Skip      int         `query:"skip"`
	Limit     int         `query:"limit"`
	MediaType string      `query:"media_type"`
	Status    string      `query:"status"`
	Category  string      `query:"category"`
	Tags      domain.Tags `query:"tags"`
	Search    string      `query:"search"`
}

type mediaView struct {
	View  string             `json:"view"`
	Items []domain.MediaItem `json:"items"`
}

type notFoundView struct {
	View string `json:"view"`
	Path string `json:"path"`
}

// Dashboard handles GET /dashboard.
//
// @Summary      Dashboard
// @Tags         views
// @Produce      json
// @Success      200  {object}  dashboardView
// @Success      302  "Not signed in, redirected to /auth"
// @Router       /dashboard [get]
func (h *ViewHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(h.session)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	recent, err := h.cards.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return err
	}
	notebooks, err := h.notebooks.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardView{
		View:        "dashboard",
		User:        user,
		RecentCards: recent,
		Notebooks:   notebooks,
	})
}

// Profile handles GET /profile.
//
// @Summary      Profile
// @Tags         views
// @Produce      json
// @Success      200  {object}  profileView
// @Router       /profile [get]
func (h *ViewHandler) Profile(c echo.Context) error {
	user, err := currentUser(h.session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileView{View: "profile", DisplayName: user.DisplayName(), User: user})
}

// Media handles GET /media. Query parameters are forwarded to the backend.
//
// @Summary      Media library
// @Tags         views
// @Produce      json
// @Param        skip        query     int     false  "Offset"
// @Param        limit       query     int     false  "Page size"
// @Param        media_type  query     string  false  "book, movie, series, ..."
// @Param        status      query     string  false  "Status"
// @Param        category    query     string  false  "Category"
// @Param        tags        query     string  false  "Comma separated tags"
// @Param        search      query     string  false  "Full-text search"
// @Success      200         {object}  mediaView
// @Success      302         "Not signed in, redirected to /auth"
// @Failure      502         {object}  map[string]string
// @Router       /media [get]
func (h *ViewHandler) Media(c echo.Context) error {
	var q listMediaQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	items, err := h.media.List(c.Request().Context(), domain.MediaQuery{
		Skip:      q.Skip,
		Limit:     q.Limit,
		MediaType: q.MediaType,
		Status:    q.Status,
		Category:  q.Category,
		Tags:      q.Tags,
		Search:    q.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mediaView{View: "media", Items: items})
}

// NotFound renders the catch-all view.
func (h *ViewHandler) NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, notFoundView{View: "NotFound", Path: c.Request().URL.Path})
}
