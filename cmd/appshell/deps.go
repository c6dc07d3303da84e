package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/knowcards/appshell/internal/api/metrics"
	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/service"
	"github.com/knowcards/appshell/internal/infrastructure/client"
	"github.com/knowcards/appshell/internal/infrastructure/config"
	"github.com/knowcards/appshell/internal/infrastructure/tokenstore"
	"github.com/knowcards/appshell/internal/infrastructure/transport"
	"github.com/knowcards/appshell/pkg/logger"
)

var validate = validator.New()

// app is the dependency graph shared by every subcommand.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     *tokenstore.Store
	transport *transport.Client
	session   *service.SessionService
	navigator *service.Navigator
	cards     *client.CardsClient
	notebooks *client.NotebooksClient
	media     *client.MediaClient
}

// loadConfig reads the environment and applies the global flags on top.
func loadConfig(ctx context.Context, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.store != "" {
		cfg.Token.Store = flags.store
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.ephemeral {
		cfg.Token.Store = config.StoreMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires config, token store, transport, auth gateway, session and
// resource clients, then restores the persisted session.
func newApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		App:    "appshell",
	})

	store, err := tokenstore.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	tr, err := transport.New(transport.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger.For("transport"),
	})
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("build transport: %w", err)
	}

	session := service.NewSessionService(client.NewAuthClient(tr), store, service.MessagesFor(cfg.Locale), logger.For("session"))
	tr.Bind(session, session)
	session.OnTransition(func(from, to domain.SessionState) {
		metrics.SessionTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
	})

	if err := session.Initialize(ctx); err != nil {
		log.Warn().Err(err).Str("store", store.Backend).Msg("could not restore session")
	}

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		transport: tr,
		session:   session,
		navigator: service.NewNavigator(service.Routes(), session),
		cards:     client.NewCardsClient(tr),
		notebooks: client.NewNotebooksClient(tr),
		media:     client.NewMediaClient(tr),
	}, nil
}

// Close releases the token store connection.
func (a *app) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}

// require runs the navigation guard for path and fails when it would send
// the user elsewhere.
func (a *app) require(path string) error {
	route, decision := a.navigator.Navigate(path)
	if !decision.Redirect {
		return nil
	}
	if decision.Target == domain.LoginRoute {
		return fmt.Errorf("%s requires a session, run `appshell login` first: %w", route.Name, domain.ErrNotAuthenticated)
	}
	return fmt.Errorf("%s is not available in state %s (redirects to %s)", route.Name, a.session.State(), decision.Target)
}

// withApp builds the app for one command invocation and closes it after run.
func withApp(ctx context.Context, flags *globalFlags, run func(*app) error) error {
	a, err := newApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			a.log.Warn().Err(err).Msg("closing token store")
		}
	}()
	return run(a)
}
