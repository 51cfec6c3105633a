package cli

import (
	"context"
	"fmt"
	"io"

	"golden-brain/internal/bank"
	"golden-brain/internal/config"
	pgloader "golden-brain/internal/infra/postgres"
	"golden-brain/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd loads a question bank into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "bank YAML file (defaults to bank.file, then the built-in bank)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	closeLog, err := logger.Initialize(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.Get()

	if file == "" {
		file = cfg.Bank.File
	}
	sets, err := bank.Load(file)
	if err != nil {
		return err
	}

	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := pgloader.NewSeeder(db).Seed(ctx, bank.Ordered(sets))
	if err != nil {
		return err
	}
	log.Info("question bank seeded", zap.Int("sets", n), zap.String("file", file))
	fmt.Fprintf(out, "seeded %d question sets\n", n)
	return nil
}
