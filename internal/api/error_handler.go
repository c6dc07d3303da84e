package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/infrastructure/transport"
)

// errorResponse is the canonical error envelope for all shell errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends the user to the sign-in view when the session ended mid-request.
//   - Maps known domain errors and backend errors to HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotAuthenticated) {
			_ = c.Redirect(http.StatusFound, domain.LoginRoute)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Detail()
		switch {
		case errors.Is(err, domain.ErrNotFound):
			if msg == "" {
				msg = "not found"
			}
			return http.StatusNotFound, msg
		case errors.Is(err, domain.ErrForbidden):
			if msg == "" {
				msg = "access forbidden"
			}
			return http.StatusForbidden, msg
		case apiErr.Status >= 400 && apiErr.Status < 500:
			if msg == "" {
				msg = http.StatusText(apiErr.Status)
			}
			return apiErr.Status, msg
		}
		log.Error().
			Err(err).
			Int("upstream_status", apiErr.Status).
			Str("path", c.Path()).
			Msg("backend error")
		return http.StatusBadGateway, "backend error"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		log.Error().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, "backend unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
