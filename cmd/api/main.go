package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/pusherlabs/pusher-ledger/internal/api"
	"github.com/pusherlabs/pusher-ledger/internal/config"
	"github.com/pusherlabs/pusher-ledger/internal/events/redisstream"
	"github.com/pusherlabs/pusher-ledger/internal/infra/clock"
	"github.com/pusherlabs/pusher-ledger/internal/infra/logging"
	"github.com/pusherlabs/pusher-ledger/internal/infra/pgutils"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
	"github.com/pusherlabs/pusher-ledger/internal/services/game"
	"github.com/pusherlabs/pusher-ledger/pkg/shutdownqueue"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	Postgres        config.PostgresConfig
	Redis           redisstream.Config
	Auth            config.AuthConfig
	Game            config.GameConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	policy, err := ledger.ParsePolicy(cfg.Game.Policy)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		return db.Close()
	})

	emitter, err := redisstream.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("open event stream: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		return emitter.Close()
	})

	gameSvc := game.New(db, emitter, clock.New(), game.Config{
		Policy:       policy,
		OrdinaryMint: tokenledger.Mint(cfg.Game.OrdinaryMint),
		RareMint:     tokenledger.Mint(cfg.Game.RareMint),
	})

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, gameSvc, cfg.Auth)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "policy", policy)

	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
