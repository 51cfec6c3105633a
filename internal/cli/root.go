package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("TRIVIA_CONFIG")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:          "golden-brain",
		Short:        "Terminal trivia with per-category leaderboards",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), configPath, *opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	addPlayFlags(cmd, opts)
	cmd.AddCommand(NewPlayCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSeedCmd(&configPath))
	cmd.AddCommand(NewBankCmd(&configPath))
	return cmd
}
