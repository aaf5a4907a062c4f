package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/techtrends/techtrends/engine/infra/sqlite"
	"github.com/techtrends/techtrends/pkg/config"
	"github.com/techtrends/techtrends/pkg/logger"
)

func InitDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the posts table and seed starter posts",
		Long:  "Creates the posts table when it is missing and, unless --no-seed is given, writes the starter posts into an empty table.",
		RunE:  runInitDB,
	}
	cmd.Flags().Bool("no-seed", false, "Only create the schema")
	return cmd
}

func runInitDB(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := logger.FromContext(ctx)
	noSeed, err := cmd.Flags().GetBool("no-seed")
	if err != nil {
		return fmt.Errorf("failed to get no-seed flag: %w", err)
	}
	accessor := sqlite.NewAccessor(sqlite.ConfigFrom(cfg), nil)
	if err := sqlite.EnsureSchema(ctx, accessor); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if noSeed {
		log.Info("Database initialized", "database", cfg.Database.Path)
		return nil
	}
	seeded, err := sqlite.SeedPosts(ctx, accessor, sqlite.DefaultSeeds())
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	log.Info("Database initialized", "database", cfg.Database.Path, "seeded", seeded)
	return nil
}
