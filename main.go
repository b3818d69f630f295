package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/pokedex/internal/config"
	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/handler"
	"github.com/msomdec/pokedex/internal/metrics"
	"github.com/msomdec/pokedex/internal/pokeapi"
	"github.com/msomdec/pokedex/internal/repository/redis"
	"github.com/msomdec/pokedex/internal/repository/sqlite"
	"github.com/msomdec/pokedex/internal/service"
)

func main() {
	level := new(slog.LevelVar)
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		slog.Error("failed to create token service", "error", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(db.Users(), tokenService, cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to create auth service", "error", err)
		os.Exit(1)
	}
	collectionService := service.NewCollectionService(
		db.Collection(),
		pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout),
	)

	// Admission stats are optional and never block startup.
	var admissions domain.AdmissionRecorder
	if cfg.RedisAddr != "" {
		rdb, err := redis.NewClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis unavailable, admission stats disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer rdb.Close()
			admissions = redis.NewAdmissionStore(rdb, redis.WithPrefix(cfg.RedisStatsPrefix))
			slog.Info("admission stats enabled", "addr", cfg.RedisAddr)
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: handler.NewServer(handler.Services{
			Auth:           authService,
			Tokens:         tokenService,
			Collection:     collectionService,
			Limiter:        service.NewSlidingWindow(cfg.RateLimit, cfg.RateInterval),
			Admissions:     admissions,
			Metrics:        m,
			AllowedOrigins: cfg.CORSAllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr,
			"rate_limit", cfg.RateLimit, "rate_interval", cfg.RateInterval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
