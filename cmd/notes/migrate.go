package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notesapp/internal/notes/config"
	"notesapp/internal/notes/db"
	"notesapp/pkg/db/postgres"
)

var errMigrationsPostgresOnly = errors.New("migrations apply to the postgres storage driver only")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema of the notes store",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigrations(cmd, postgres.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigrations(cmd, postgres.Down)
	},
}

func runMigrations(cmd *cobra.Command, direction postgres.Direction) error {
	ctx := cmd.Context()
	rt := depsFrom(ctx)

	if rt.cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("%w (driver %q)", errMigrationsPostgresOnly, rt.cfg.Storage.Driver)
	}

	if err := db.Migrate(ctx, &rt.cfg.Postgres, rt.cfg.Migrations.Dir, direction); err != nil {
		rt.log.Error(ctx, db.ErrDBMigrations, zap.Error(err))
		return err
	}
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
