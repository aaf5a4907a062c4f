package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/techtrends/techtrends/pkg/config"
	"github.com/techtrends/techtrends/pkg/logger"
)

// SetupGlobalConfig loads configuration from defaults, the .env file, the environment
// and explicitly set flags, installs the logger and attaches both to the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	flags := make(map[string]any)
	extractCLIFlags(cmd, flags)
	cfg, err := config.NewLoader().Load(ctx,
		config.NewDotenvProvider(envFile, cmd.Flags().Changed("env-file")),
		config.NewCLIProvider(flags),
	)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetupLogger(cfg.Logging.Level, cfg.Logging.JSON, cfg.Logging.AddSource)
	log := logger.GetDefault()
	log.Debug("Configuration loaded",
		"database", cfg.Database.Path,
		"level", logger.ParseLevel(cfg.Logging.Level),
	)
	ctx = logger.ContextWithLogger(ctx, log)
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}
