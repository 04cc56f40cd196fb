package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/quickdynalist/internal/adapter/driven/dynalist"
	httphandler "github.com/ericfisherdev/quickdynalist/internal/adapter/driving/http"
	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/config"
)

// serve runs the local JSON API and the location refresh loop until ctx is
// canceled. Its gate and submitter have no prompter, so a rejected token is
// reported to API callers instead of prompting on the terminal.
func serve(
	ctx context.Context,
	cfg *config.Config,
	session *application.Session,
	client *dynalist.Client,
	locations *application.LocationService,
	logger *slog.Logger,
) error {
	gate := application.NewAuthGate(session, client, nil, nil, cfg.DeveloperURL, logger)
	submitter := application.NewSubmitter(session, gate, client, nil, cfg.InsertPosition, logger)

	go locations.Start(ctx)

	apiHandler := httphandler.NewHandler(gate, submitter, locations, logger)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(apiHandler, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.HTTPTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	// Graceful shutdown with 10s timeout for in-flight submissions.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
