package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/knowcards/appshell/internal/api/metrics"
	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
	"github.com/knowcards/appshell/internal/core/service"
)

// ContextKeyRoute is the echo context key holding the matched route name.
const ContextKeyRoute = "route"

// Guard runs the navigation guard for route before its handler. The session
// predicate is read on every request; a redirect decision answers 302.
func Guard(route domain.RouteDescriptor, session ports.AuthPredicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := service.Guard(route.Access, session.IsAuthenticated())
			if decision.Redirect {
				metrics.GuardDecisionsTotal.WithLabelValues(route.Name, "redirect").Inc()
				return c.Redirect(http.StatusFound, decision.Target)
			}

			metrics.GuardDecisionsTotal.WithLabelValues(route.Name, "proceed").Inc()
			c.Set(ContextKeyRoute, route.Name)
			return next(c)
		}
	}
}
