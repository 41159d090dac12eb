package main

import (
	"database/sql"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"minder/internal/config"
	"minder/internal/store"

	_ "modernc.org/sqlite"
)

func newMigrateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run or inspect database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				db, err := openRawDB(cfg.DBPath)
				if err != nil {
					return err
				}
				defer db.Close()

				plan, err := store.MigrationPlan(db)
				if err != nil {
					return fmt.Errorf("inspect migrations: %w", err)
				}
				if *jsonOutput {
					return writeJSON(plan)
				}
				return writeMigrationPlan(plan)
			}

			// Opening the store applies pending migrations.
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer st.Close()

			plan, err := store.MigrationPlan(st.DB())
			if err != nil {
				return err
			}
			if *jsonOutput {
				return writeJSON(plan)
			}
			return writePlain("Migrations applied, schema at version %d.\n", plan.CurrentVersion)
		},
	}

	cmd.AddCommand(newMigrateStatusCmd(cfg, jsonOutput))
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show pending migrations without applying")
	return cmd
}

func newMigrateStatusCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status without applying anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openRawDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			plan, err := store.MigrationPlan(db)
			if err != nil {
				return fmt.Errorf("inspect migrations: %w", err)
			}
			if *jsonOutput {
				return writeJSON(plan)
			}
			return writeMigrationPlan(plan)
		},
	}
}

func writeMigrationPlan(plan *store.MigrationStatus) error {
	if err := writePlain("Current version: %d\n", plan.CurrentVersion); err != nil {
		return err
	}
	if err := writePlain("Available version: %d\n", plan.AvailableVersion); err != nil {
		return err
	}
	if len(plan.Pending) == 0 {
		return writePlain("No pending migrations.\n")
	}
	if err := writePlain("Pending migrations: %d\n", len(plan.Pending)); err != nil {
		return err
	}
	for _, m := range plan.Pending {
		if err := writePlain("  %d: %s\n", m.Version, m.Description); err != nil {
			return err
		}
	}
	return nil
}

func openRawDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return sql.Open("sqlite", u.String())
}
