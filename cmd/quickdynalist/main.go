package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for minimal images

	browseradapter "github.com/ericfisherdev/quickdynalist/internal/adapter/driven/browser"
	"github.com/ericfisherdev/quickdynalist/internal/adapter/driven/dynalist"
	sqliteadapter "github.com/ericfisherdev/quickdynalist/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/quickdynalist/internal/adapter/driving/cli"
	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/config"
)

func main() {
	if err := run(); err != nil {
		// cobra has already printed command errors.
		slog.Debug("exiting with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Debug("config loaded",
		"db_path", cfg.DBPath,
		"api_url", cfg.APIURL,
		"listen_addr", cfg.ListenAddr,
		"refresh_interval", cfg.RefreshInterval,
		"insert_position", cfg.InsertPosition,
		"encrypted_credentials", cfg.HasSecretKey(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode) and migrate.
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	logger.Debug("database ready", "path", db.Path())

	// 4. Wire adapters.
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	locationStore := sqliteadapter.NewLocationRepo(db)

	client, err := dynalist.NewClient(cfg.APIURL, cfg.HTTPTimeout, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	session, err := application.NewSession(ctx, credentialStore)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	// 5. Interactive services share the terminal prompter.
	prompter := cli.NewTerminalPrompter(os.Stdin, os.Stdout)
	browser := browseradapter.NewSystem(logger)
	gate := application.NewAuthGate(session, client, prompter, browser, cfg.DeveloperURL, logger)
	submitter := application.NewSubmitter(session, gate, client, prompter, cfg.InsertPosition, logger)
	locations := application.NewLocationService(session, client, locationStore, nil, cfg.RefreshInterval, logger)

	root := cli.NewRootCmd(cli.Deps{
		Gate:        gate,
		Submitter:   submitter,
		Locations:   locations,
		Credentials: credentialStore,
		Prompter:    prompter,
		DBPath:      db.Path(),
		Serve: func(ctx context.Context) error {
			return serve(ctx, cfg, session, client, locations, logger)
		},
	})

	return root.ExecuteContext(ctx)
}
