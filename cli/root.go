package cli

import (
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "techtrends",
		Short:         "TechTrends blog server",
		Long:          "TechTrends serves a small cloud-native news blog backed by SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
		RunE: runServe,
	}
	flags := root.PersistentFlags()
	flags.String("env-file", defaultEnvFile, "Path to a .env file (ignored when missing unless set explicitly)")
	flags.String("log-level", "", "Log level: CRITICAL, ERROR, WARNING, INFO or DEBUG (overrides APP_LOGGERLEVEL)")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.Bool("log-source", false, "Include source locations in logs")
	flags.String("db", "", "Path to the SQLite database file (overrides DB_PATH)")
	addServeFlags(root.Flags())
	root.AddCommand(
		ServeCmd(),
		InitDBCmd(),
	)
	return root
}
