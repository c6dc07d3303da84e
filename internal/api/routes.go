package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/knowcards/appshell/internal/api/handler"
	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/service"
)

// endpoint is one method and path a view answers on.
type endpoint struct {
	method  string
	path    string
	handler echo.HandlerFunc
}

// viewRoute is a route descriptor bound to the endpoints of its view.
type viewRoute struct {
	domain.RouteDescriptor
	endpoints []endpoint
}

// lazy defers building a handler until the first request that needs it.
func lazy(load func() echo.HandlerFunc) echo.HandlerFunc {
	get := sync.OnceValue(load)
	return func(c echo.Context) error {
		return get()(c)
	}
}

// viewRoutes binds the route table to view handlers. Handler structs are
// constructed on the first request to any of their views.
func viewRoutes(deps Deps) []viewRoute {
	auth := sync.OnceValue(func() *handler.AuthHandler { return handler.NewAuthHandler(deps.Session) })
	cards := sync.OnceValue(func() *handler.CardHandler { return handler.NewCardHandler(deps.Cards, deps.Notebooks) })
	views := sync.OnceValue(func() *handler.ViewHandler {
		return handler.NewViewHandler(deps.Session, deps.Cards, deps.Notebooks, deps.Media)
	})

	bound := map[string][]endpoint{
		"auth": {
			{http.MethodGet, "/auth", lazy(func() echo.HandlerFunc { return auth().Page })},
			{http.MethodPost, "/auth/login", lazy(func() echo.HandlerFunc { return auth().Login })},
			{http.MethodPost, "/auth/register", lazy(func() echo.HandlerFunc { return auth().Register })},
		},
		"dashboard": {{http.MethodGet, "/dashboard", lazy(func() echo.HandlerFunc { return views().Dashboard })}},
		"cards":     {{http.MethodGet, "/cards", lazy(func() echo.HandlerFunc { return cards().List })}},
		"new-card": {
			{http.MethodGet, "/cards/new", lazy(func() echo.HandlerFunc { return cards().New })},
			{http.MethodPost, "/cards/new", lazy(func() echo.HandlerFunc { return cards().Create })},
		},
		"card-detail": {
			{http.MethodGet, "/cards/:id", lazy(func() echo.HandlerFunc { return cards().Show })},
			{http.MethodPost, "/cards/:id", lazy(func() echo.HandlerFunc { return cards().Update })},
			{http.MethodPost, "/cards/:id/delete", lazy(func() echo.HandlerFunc { return cards().Delete })},
		},
		"media":    {{http.MethodGet, "/media", lazy(func() echo.HandlerFunc { return views().Media })}},
		"profile":  {{http.MethodGet, "/profile", lazy(func() echo.HandlerFunc { return views().Profile })}},
		"NotFound": {{echo.RouteNotFound, domain.CatchAll, lazy(func() echo.HandlerFunc { return views().NotFound })}},
	}

	table := service.Routes()
	out := make([]viewRoute, 0, len(table))
	for _, r := range table {
		vr := viewRoute{RouteDescriptor: r, endpoints: bound[r.Name]}
		if r.Redirect != "" {
			target := r.Redirect
			vr.endpoints = []endpoint{{http.MethodGet, r.Path, func(c echo.Context) error {
				return c.Redirect(http.StatusFound, target)
			}}}
		}
		out = append(out, vr)
	}
	return out
}
