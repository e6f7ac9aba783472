package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kaamsetu/gigwork-backend/api/controllers"
	"github.com/kaamsetu/gigwork-backend/api/routes"
	"github.com/kaamsetu/gigwork-backend/internal/accounts"
	"github.com/kaamsetu/gigwork-backend/internal/auth"
	"github.com/kaamsetu/gigwork-backend/internal/jobs"
	"github.com/kaamsetu/gigwork-backend/internal/profiles"
	"github.com/kaamsetu/gigwork-backend/pkg/config"
	"github.com/kaamsetu/gigwork-backend/pkg/db"
	"github.com/kaamsetu/gigwork-backend/pkg/logger"
	"github.com/kaamsetu/gigwork-backend/pkg/metrics"
	"github.com/kaamsetu/gigwork-backend/pkg/migrate"
	"github.com/kaamsetu/gigwork-backend/pkg/redis"
	"github.com/kaamsetu/gigwork-backend/pkg/storage/cloudinary"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var uploader cloudinary.ImageUploader
	if cfg.Cloudinary.Enabled() {
		client, err := cloudinary.New(cfg.Cloudinary)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap cloudinary", err)
			os.Exit(1)
		}
		uploader = client
	} else {
		logg.Warn(context.Background(), "cloudinary not configured, profile image uploads disabled")
	}

	accountRepo := accounts.NewRepository(dbClient.DB())
	jobRepo := jobs.NewRepository(dbClient.DB())
	profileRepo := profiles.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		AccountRepo:    accountRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	jobService, err := jobs.NewService(jobs.ServiceParams{
		JobRepo:     jobRepo,
		AccountRepo: accountRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create job service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.ServiceParams{
		AccountRepo: accountRepo,
		ProfileRepo: profileRepo,
		Tx:          dbClient,
		Uploader:    uploader,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	healthDeps := map[string]controllers.Pinger{
		"postgres": dbClient,
		"redis":    redisClient,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			registry,
			redisClient,
			healthDeps,
			authService,
			jobService,
			profileService,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
