package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
)

// currentUser returns the session user. The guard has already redirected
// anonymous requests; a missing user here means the session ended between
// the guard and the handler.
func currentUser(session ports.SessionService) (*domain.User, error) {
	u := session.CurrentUser()
	if u == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return u, nil
}

// bindForm binds a JSON or form body and validates it with c.Validate.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// cardID reads the :id path parameter.
func cardID(c echo.Context) (domain.ID, error) {
	id := c.Param("id")
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing card id")
	}
	return domain.ID(id), nil
}
