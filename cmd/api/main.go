package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/giovanipessoa/next-clisphere/internal/api/router"
	"github.com/giovanipessoa/next-clisphere/internal/clients"
	appconfig "github.com/giovanipessoa/next-clisphere/internal/config"
	"github.com/giovanipessoa/next-clisphere/internal/dashboard"
	"github.com/giovanipessoa/next-clisphere/internal/database"
	"github.com/giovanipessoa/next-clisphere/internal/events"
	"github.com/giovanipessoa/next-clisphere/internal/observability/metrics"
	"github.com/giovanipessoa/next-clisphere/internal/services"
	"github.com/giovanipessoa/next-clisphere/internal/workspace"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clisphere API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// One pool for the whole process; every repository shares it.
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = redisClient.Close() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	apiMetrics := metrics.NewAPIMetrics(registry)

	// Repositories
	clientsRepo := clients.NewPostgresRepository(pool)
	servicesRepo := services.NewPostgresRepository(pool)
	eventsRepo := events.NewPostgresRepository(pool)
	statsRepo := dashboard.NewStatsRepository(pool)
	settingsStore := workspace.NewStore(redisClient)

	// Use cases and handlers
	clientsService := clients.NewService(clientsRepo, logger)
	eventsService := events.NewService(eventsRepo, clientsRepo, servicesRepo, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		ClientsHandler:     clients.NewHandler(clientsService, clientsRepo, logger),
		EventsHandler:      events.NewHandler(eventsService, eventsRepo, logger),
		ServicesHandler:    services.NewHandler(servicesRepo, logger),
		DashboardHandler:   dashboard.NewHandler(statsRepo, logger),
		SettingsHandler:    workspace.NewHandler(settingsStore, logger),
		Metrics:            apiMetrics,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
