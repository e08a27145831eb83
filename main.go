package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense-ledger/internal/config"
	"expense-ledger/internal/database"
	"expense-ledger/internal/router"
	"expense-ledger/internal/util"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", envOr("EXPENSE_CONFIG", "config.yaml"), "path to config file")
	flag.Parse()

	// load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Log)

	if cfg.JWT.Secret == "" {
		secret, err := util.RandomString(48)
		if err != nil {
			logger.Fatal().Err(err).Msg("generate jwt secret")
		}
		cfg.JWT.Secret = secret
		logger.Warn().Msg("jwt.secret is empty; using a random secret, tokens will not survive a restart")
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}
	defer database.Close(db)

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:           router.SetupRouter(cfg, db, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
