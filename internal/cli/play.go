package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"golden-brain/internal/app"
	"golden-brain/internal/bank"
	"golden-brain/internal/config"
	"golden-brain/internal/infra/memory"
	pgloader "golden-brain/internal/infra/postgres"
	infraredis "golden-brain/internal/infra/redis"
	"golden-brain/internal/logger"
	"golden-brain/internal/transport/console"
	transport "golden-brain/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type playOptions struct {
	spectate string
	seed     int64
}

func addPlayFlags(cmd *cobra.Command, opts *playOptions) {
	cmd.Flags().StringVar(&opts.spectate, "spectate", "", "serve read-only standings on this address, e.g. :8080")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for question order (0 uses the clock)")
}

// NewPlayCmd starts an interactive game on stdin/stdout.
func NewPlayCmd(configPath *string) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the trivia game in this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, *opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	addPlayFlags(cmd, opts)
	return cmd
}

func runPlay(ctx context.Context, configPath string, opts playOptions, in io.Reader, out io.Writer) error {
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

	if opts.seed == 0 {
		opts.seed = cfg.Game.Seed
	}
	game, cleanup, err := buildGame(ctx, cfg, opts.seed, log)
	if err != nil {
		return err
	}
	defer cleanup()

	con := console.New(game, in, out)
	addr := opts.spectate
	if addr == "" {
		addr = cfg.Spectator.Addr
	}
	if addr == "" {
		return con.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := &http.Server{
		Addr:         addr,
		Handler:      transport.NewRouter(game, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("spectator server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		// Leaving the game stops the spectator server too.
		defer cancel()
		return con.Run(gctx)
	})
	return g.Wait()
}

// buildGame wires the question source and session store. Postgres replaces
// the YAML bank when configured; Redis replaces the in-process caches.
func buildGame(ctx context.Context, cfg config.Config, seed int64, log *zap.Logger) (*app.Game, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var loader memory.QuestionSetLoader
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return nil, cleanup, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pool.Close)
		loader = pgloader.NewQuestionLoader(pool)
	} else {
		sets, err := bank.Load(cfg.Bank.File)
		if err != nil {
			return nil, cleanup, err
		}
		loader = memory.NewStaticLoader(sets)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	var store app.SessionRepository
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)
		questions = infraredis.NewQuestionRepository(client, loader, bankTTL, log)
		store = infraredis.NewSessionStore(client, redisTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, bankTTL)
		store = memory.NewSessionStore()
	}

	game := app.NewGame(app.NewRegistry(), questions, store,
		app.WithLogger(log),
		app.WithSeed(seed),
		app.WithStandingsLimit(cfg.Game.LeaderboardLimit),
	)
	return game, cleanup, nil
}
