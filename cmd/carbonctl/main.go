// Package main is the carbonctl admin tool. It runs migrations and manages
// the emission catalog outside the API process.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/application/usecase/catalog"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/infra/db"
	"github.com/carbon-tracker/backend/internal/integration/persistence"
	"github.com/carbon-tracker/backend/internal/integration/seed"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	root := &cobra.Command{
		Use:           "carbonctl",
		Short:         "Carbon Tracker admin tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (defaults to DATABASE_URL)")

	root.AddCommand(newMigrateCmd(&databaseURL))
	root.AddCommand(newSeedCatalogCmd(&databaseURL))
	root.AddCommand(newCatalogCmd(&databaseURL))
	root.AddCommand(newPruneTokensCmd(&databaseURL))
	return root
}

func openDatabase(ctx context.Context, databaseURL string) (*db.Database, error) {
	cfg := config.Load()
	if databaseURL != "" {
		cfg.Database.URL = databaseURL
	}
	cfg.Database.ConnectAttempts = 1
	return db.NewPostgresConnection(ctx, &cfg.Database)
}

func newMigrateCmd(databaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := openDatabase(cmd.Context(), *databaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedCatalogCmd(databaseURL *string) *cobra.Command {
	var file string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed-catalog",
		Short: "Upsert the emission catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := seed.Catalog(file)
			if err != nil {
				return err
			}
			if dryRun {
				return printCatalog(cmd.OutOrStdout(), types)
			}

			database, err := openDatabase(cmd.Context(), *databaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			uc := catalog.NewSeedCatalogUseCase(persistence.NewActivityTypeRepository(database.DB()))
			out, err := uc.Execute(cmd.Context(), types)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "upserted %d activity types\n", out.Upserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog file (defaults to the built-in catalog)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the catalog without writing it")
	return cmd
}

func newCatalogCmd(databaseURL *string) *cobra.Command {
	root := &cobra.Command{Use: "catalog", Short: "Inspect the emission catalog"}

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the stored activity types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := openDatabase(cmd.Context(), *databaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			uc := catalog.NewListActivityTypesUseCase(persistence.NewActivityTypeRepository(database.DB()))
			out, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), out.ActivityTypes)
		},
	})
	return root
}

func newPruneTokensCmd(databaseURL *string) *cobra.Command {
	var grace time.Duration

	cmd := &cobra.Command{
		Use:   "prune-tokens",
		Short: "Delete refresh tokens that expired before now minus --grace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := openDatabase(cmd.Context(), *databaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			cutoff := time.Now().UTC().Add(-grace)
			deleted, err := persistence.NewTokenRepository(database.DB()).DeleteExpiredRefreshTokens(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d refresh tokens\n", deleted)
			return nil
		},
	}
	cmd.Flags().DurationVar(&grace, "grace", 24*time.Hour, "Keep tokens that expired within this window")
	return cmd
}

func printCatalog(w io.Writer, types []*entity.ActivityType) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tUNIT\tFACTOR\tCATEGORY")
	for _, t := range types {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\n", t.ID, t.Name, t.Unit, t.EmissionFactor, t.Category)
	}
	return tw.Flush()
}
