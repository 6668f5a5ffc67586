package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"bookshelf/internal/app"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run serves until ctx is done. Store handles are released before it
// returns, so the caller may exit right after.
func run(ctx context.Context, cfg config.Config) error {
	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		return errors.Wrapf(err, "open %s store", cfg.StoreDriver)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := repos.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("store close error")
		}
	}()

	verifier, err := app.NewVerifier(ctx, cfg)
	if err != nil {
		return errors.Wrapf(err, "initialise %s verifier", cfg.AuthProvider)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.NewRouter(cfg, repos, verifier),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.StoreDriver).
			Str("auth", cfg.AuthProvider).
			Bool("enforce_ownership", cfg.EnforceOwnership).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		return errors.Wrap(err, "listen")
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	log.Info().Msg("server shutdown complete")
	return nil
}
