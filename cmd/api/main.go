package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/streamgrab/internal/api/handler"
	"github.com/hszk-dev/streamgrab/internal/api/middleware"
	"github.com/hszk-dev/streamgrab/internal/config"
	"github.com/hszk-dev/streamgrab/internal/domain/repository"
	"github.com/hszk-dev/streamgrab/internal/infrastructure/cache"
	"github.com/hszk-dev/streamgrab/internal/infrastructure/postgres"
	"github.com/hszk-dev/streamgrab/internal/platform"
	"github.com/hszk-dev/streamgrab/internal/usecase"
	"github.com/hszk-dev/streamgrab/internal/ytdlp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	var history repository.HistoryRepository
	if cfg.Database.Enabled {
		pg, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pg.Close()
		history = postgres.NewHistoryRepository(pg.Pool())
	} else {
		logger.Info("extraction history disabled")
	}

	runner := ytdlp.NewCommandRunner(ytdlp.RunnerConfig{
		BinaryPath: cfg.Extractor.BinaryPath,
		Timeout:    cfg.Extractor.Timeout,
	})
	extractor := ytdlp.NewClient(runner)

	matcher := platform.NewMatcher(platform.Default())
	resolver := usecase.NewFormatResolver(extractor, cfg.Extractor.ResolveConcurrency)

	svc := usecase.NewExtractService(matcher, extractor, resolver, history)
	cachedSvc := usecase.NewCachedExtractService(
		svc,
		cache.NewRedisExtractionCache(redisClient),
		usecase.CachedExtractServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	extractHandler := handler.NewExtractHandler(cachedSvc, matcher, history)

	r := setupRouter(logger, extractHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, extractHandler *handler.ExtractHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/download", extractHandler.Download)
		r.Post("/info", extractHandler.Info)
		r.Get("/platforms", extractHandler.Platforms)
		r.Get("/history", extractHandler.History)
	})

	return r
}
