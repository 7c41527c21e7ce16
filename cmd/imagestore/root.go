package main

import (
	"fmt"

	"github.com/deppfellow/imagestore/internal/config"
	"github.com/deppfellow/imagestore/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          config.ServiceName,
		Short:        "Image metadata API over MongoDB and PostgreSQL",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// bootstrap loads the environment config and builds the process logger.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
