package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/romariotrain/video-catalog/internal/storage/local"
	"github.com/romariotrain/video-catalog/internal/storage/postgres"
	"github.com/romariotrain/video-catalog/internal/storage/s3"
	"github.com/romariotrain/video-catalog/internal/video/httpapi"
	"github.com/romariotrain/video-catalog/internal/video/repository"
	"github.com/romariotrain/video-catalog/internal/video/service"
)

// poolConfigFromEnv reads the optional DB_* pool knobs; unset or
// malformed values keep the package defaults.
func poolConfigFromEnv() postgres.PoolConfig {
	return postgres.PoolConfig{
		MaxOpenConns: envInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: envInt("DB_MAX_IDLE_CONNS"),
	}
}

func envInt(key string) int {
	v, _ := strconv.Atoi(os.Getenv(key))
	return v
}

func run(ctx context.Context, logger zerolog.Logger) error {
	_ = godotenv.Load()

	cfg := service.Config{Logger: logger}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := postgres.Connect(ctx, dsn, poolConfigFromEnv())
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()

		cfg.Videos = postgres.NewVideoRepo(db)
		cfg.Categories = postgres.NewCategoryRepo(db)
		cfg.Genres = postgres.NewGenreRepo(db)
		cfg.CastMembers = postgres.NewCastMemberRepo(db)
		cfg.UnitOfWork = postgres.NewUnitOfWork(db)
		cfg.Outbox = postgres.NewOutboxRepo(db)
	} else {
		logger.Warn().Msg("DATABASE_URL is empty, using in-memory repositories")
		cfg.Videos = repository.NewMemoryVideoRepository()
		cfg.Categories = repository.NewMemoryRelationChecker()
		cfg.Genres = repository.NewMemoryRelationChecker()
		cfg.CastMembers = repository.NewMemoryRelationChecker()
		cfg.UnitOfWork = repository.NewMemoryUnitOfWork()
		cfg.Outbox = repository.NewMemoryOutbox()
	}

	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		storage, err := s3.New(ctx, bucket)
		if err != nil {
			return fmt.Errorf("s3 storage: %w", err)
		}
		cfg.Storage = storage
	} else {
		dir := os.Getenv("STORAGE_DIR")
		if dir == "" {
			dir = "./storage"
		}
		logger.Warn().Str("dir", dir).Msg("S3_BUCKET is empty, using local storage")
		storage, err := local.New(dir)
		if err != nil {
			return fmt.Errorf("local storage: %w", err)
		}
		cfg.Storage = storage
	}

	svc, err := service.New(cfg)
	if err != nil {
		return fmt.Errorf("build service: %w", err)
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(httpapi.New(svc, logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	logger.Info().Str("addr", addr).Msg("http server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	}
}
