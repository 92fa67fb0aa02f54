// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dishhub/internal/api"
	"github.com/taibuivan/dishhub/internal/core/comment"
	"github.com/taibuivan/dishhub/internal/core/dish"
	"github.com/taibuivan/dishhub/internal/core/image"
	"github.com/taibuivan/dishhub/internal/core/tag"
	"github.com/taibuivan/dishhub/internal/platform/config"
	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/migration"
	pgstore "github.com/taibuivan/dishhub/internal/platform/postgres"
	redisstore "github.com/taibuivan/dishhub/internal/platform/redis"
	"github.com/taibuivan/dishhub/internal/platform/sec"
	"github.com/taibuivan/dishhub/internal/platform/storage"
	"github.com/taibuivan/dishhub/internal/users/auth"
)

// NewServeCommand returns "serve".
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

/*
runServe is the server startup sequence.

 1. Load configuration and build the logger.
 2. Connect to PostgreSQL (pgxpool) and Redis.
 3. Run database migrations (idempotent).
 4. Open the image content store.
 5. Wire services and HTTP handlers.
 6. Serve until SIGINT/SIGTERM, then shut down gracefully.
*/
func runServe(parent context.Context) error {

	// ── 1. Configuration & Logger ─────────────────────────────────────────
	cfg, log, closer, err := bootstrap()
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context lives until a shutdown signal arrives.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	// ── 2. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// ── 4. Image Store ────────────────────────────────────────────────────
	files, imageServer, err := openImageStore(startupCtx, cfg)
	if err != nil {
		return fmt.Errorf("open image store: %w", err)
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}

	authService := auth.NewService(
		auth.NewAccountRepository(pool),
		auth.NewSessionRepository(rdb),
		tokens,
		cfg.AccessTokenTTL,
		log,
	)

	dishRepository := dish.NewPostgresRepository(pool)
	tagRegistry := tag.NewRegistry(tag.NewPostgresRepository(pool), log)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), dishRepository, authService, log)
	dishService := dish.NewService(dishRepository, tagRegistry, commentService, image.NewManager(files, log), log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckSessions: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	server := api.NewServer(ctx, cfg, log, authService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Dish:      dish.NewHandler(dishService, cfg.ImagePublicPath),
		Comment:   comment.NewHandler(commentService),
		Tag:       tag.NewHandler(tagRegistry),
		Images:    imageServer,
	})

	// ── 6. Serve & Graceful Shutdown ──────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err = <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}
	stop()

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if shutdownErr := server.Shutdown(constants.ShutdownTimeout); shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	log.Info("server_stopped_cleanly")
	return err
}

// openImageStore selects the content store for dish images. Only the local
// driver is served by this process; S3 images are served by the bucket.
func openImageStore(ctx context.Context, cfg *config.Config) (storage.ContentStore, http.Handler, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		store, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		return store, nil, err
	default:
		store, err := storage.NewLocal(cfg.ImageDir)
		if err != nil {
			return nil, nil, err
		}
		return store, http.FileServer(http.Dir(store.Root())), nil
	}
}
