package main

import (
	"context"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	syncapp "github.com/RadikAgl/events/contexts/event-management/catalog-service/application/sync"
	"github.com/RadikAgl/events/internal/app/bootstrap"
	"github.com/RadikAgl/events/internal/platform/config"
)

// Operational CLI for the events service: catalog sync runs and schema
// migrations. Long-running processes live under cmd/api and cmd/worker.
func main() {
	rootCmd := &cobra.Command{
		Use:   "eventsctl",
		Short: "operational commands for the events service",
	}
	rootCmd.AddCommand(
		syncCommand(),
		migrateCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func syncCommand() *cobra.Command {
	var full bool
	var since string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "synchronize the event catalog from the provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap.BuildSync()
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "sync shutdown close failed: %v\n", err)
				}
			}()

			result, err := app.Run(context.Background(), syncapp.RunSyncCommand{
				Full:  full,
				Since: since,
			})
			if err != nil {
				return err
			}

			if result.Cutoff == "" {
				fmt.Println("Full sync completed")
			} else {
				fmt.Printf("Incremental sync completed (changed since %s)\n", result.Cutoff)
			}
			fmt.Printf("added=%d updated=%d unchanged=%d skipped=%d\n",
				result.Added, result.Updated, result.Unchanged, result.Skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "all", false, "resync every provider event regardless of watermarks")
	cmd.Flags().StringVar(&since, "since", "", "explicit cutoff date (YYYY-MM-DD) for changed events")
	return cmd
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-up",
		Short: "apply all pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			m, err := migrate.New(
				fmt.Sprintf("file://%s", cfg.MigrationsDir),
				cfg.PostgresDSN,
			)
			if err != nil {
				return err
			}

			err = m.Up()
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("Migrated up")
			return nil
		},
	}
}
