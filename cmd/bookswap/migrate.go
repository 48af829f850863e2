package main

import (
	"context"
	"database/sql"
	"strings"

	"github.com/emzola/bookswap/internal/jsonlog"
	"github.com/emzola/bookswap/repository/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			db, err := postgres.OpenDBConn(cfg)
			if err != nil {
				logger.PrintError(err, nil)
				return err
			}
			defer db.Close()
			err = runMigrations(cmd.Context(), db, logger)
			if err != nil {
				logger.PrintError(err, nil)
			}
			return err
		},
	}
}

func runMigrations(ctx context.Context, db *sql.DB, logger *jsonlog.Logger) error {
	applied, err := postgres.Migrate(ctx, db)
	if len(applied) > 0 {
		logger.PrintInfo("migrations applied", map[string]string{"migrations": strings.Join(applied, ",")})
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		logger.PrintInfo("database schema is up to date", nil)
	}
	return nil
}
