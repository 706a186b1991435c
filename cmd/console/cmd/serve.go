package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnhub/institute-console/internal/api"
	"github.com/learnhub/institute-console/internal/api/handler"
	"github.com/learnhub/institute-console/internal/core/service"
	mongodb "github.com/learnhub/institute-console/internal/infrastructure/db/mongo"
	redisdb "github.com/learnhub/institute-console/internal/infrastructure/db/redis"
	"github.com/learnhub/institute-console/internal/infrastructure/queue"
	"github.com/learnhub/institute-console/internal/pkg/config"
	"github.com/learnhub/institute-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, config.Load())
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Development()})
	if cfg.EphemeralJWTSecret {
		log.Warn().Msg("JWT_SECRET not set: using a random secret, sessions end on restart")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	users := mongodb.NewUserRepository(db)
	audits := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, audits); err != nil {
		return err
	}
	sessions := redisdb.NewSessionStore(rdb)

	// Audit workers run until Shutdown, which drains queued events after the
	// server stops accepting requests.
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(audits, logger.Component("audit")), logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	navigation := service.NewNavigationService(dispatcher, logger.Component("navigation"))
	auth := service.NewAuthService(users, sessions, service.AuthOptions{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.Session.TokenTTL,
		SessionTTL: cfg.Session.TTL,
	})

	e := api.NewRouter(api.Dependencies{
		Auth:       auth,
		Navigation: navigation,
		Sessions:   sessions,
		Checks: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		JWTSecret: cfg.JWTSecret,
		Cookie:    handler.CookieOptions{Secure: cfg.Session.CookieSecure, TTL: cfg.Session.TokenTTL},
		Log:       logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serverErr:
		if err != nil {
			dispatcher.Shutdown()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	dispatcher.Shutdown()
	log.Info().Msg("stopped")
	return nil
}
