package main

import (
	"context"
	"time"

	"github.com/deppfellow/imagestore/internal/database"
	"github.com/spf13/cobra"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded PostgreSQL migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			return database.Migrate(ctx, &log, cfg)
		},
	}
}
