package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/knowcards/appshell/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the guarded HTTP application shell",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if addr == "" {
					addr = net.JoinHostPort("", a.cfg.Port)
				}
				return runServe(cmd.Context(), a, addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :$PORT)")

	return cmd
}

func runServe(ctx context.Context, a *app, addr string) error {
	e := api.NewRouter(api.Deps{
		Session:   a.session,
		Cards:     a.cards,
		Notebooks: a.notebooks,
		Media:     a.media,
		Store:     a.store,
		Logger:    a.log,
		Registry:  prometheus.NewRegistry(),
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().
			Str("addr", addr).
			Str("api", a.transport.BaseURL()).
			Str("session", a.session.State().String()).
			Msg("shell server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		a.log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("shell server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown shell server: %w", err)
	}
	return nil
}
