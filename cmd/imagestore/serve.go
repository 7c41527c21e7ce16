package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/imagestore/internal/database"
	"github.com/deppfellow/imagestore/internal/handler"
	"github.com/deppfellow/imagestore/internal/repository"
	"github.com/deppfellow/imagestore/internal/router"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/deppfellow/imagestore/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background ingest worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if migrate {
		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		err := database.Migrate(migrateCtx, &log, cfg)
		cancel()
		if err != nil {
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}

	log.Info().Bool("auth_enabled", services.Auth.Enabled()).Msg("services initialized")

	srv.Job.InitHandlers(services.Images)
	// Ingest needs Redis; the CRUD routes do not.
	if err := srv.Job.Start(); err != nil {
		log.Error().Err(err).Msg("background ingest worker not started")
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return awaitShutdown(&log, stop, serveErr, srv.Shutdown)
}

// awaitShutdown blocks until a signal arrives or the server stops on its
// own, then shuts everything down. A serve failure is returned together
// with any shutdown error so the process exits non-zero.
func awaitShutdown(
	log *zerolog.Logger,
	stop <-chan os.Signal,
	serveErr <-chan error,
	shutdown func(ctx context.Context) error,
) error {
	var runErr error

	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			runErr = fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("server forced to shutdown: %w", err))
	}

	if runErr != nil {
		return runErr
	}

	log.Info().Msg("server exited properly")
	return nil
}
