package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/knowcards/appshell/docs"
	"github.com/knowcards/appshell/internal/api/handler"
	"github.com/knowcards/appshell/internal/api/middleware"
	"github.com/knowcards/appshell/internal/core/ports"
)

// Deps are the collaborators the shell server renders views with.
type Deps struct {
	Session   ports.SessionService
	Cards     ports.CardService
	Notebooks ports.NotebookService
	Media     ports.MediaService
	Store     ports.Pinger
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics; a fresh registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with every route of the
// route table registered behind the navigation guard.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "shell",
		Registerer: reg,
	}))

	// --- Route table ---
	for _, route := range viewRoutes(deps) {
		guard := middleware.Guard(route.RouteDescriptor, deps.Session)
		for _, ep := range route.endpoints {
			e.Add(ep.method, ep.path, ep.handler, guard)
		}
	}

	authHandler := handler.NewAuthHandler(deps.Session)

	// Logout is reachable in every state.
	e.POST("/auth/logout", authHandler.Logout)

	// --- Health checks ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Store, deps.Session)

	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: is the token store up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
