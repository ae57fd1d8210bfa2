package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/peachstatevotes/election-data-api/configs"
	"github.com/peachstatevotes/election-data-api/internal/application/services"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/cache"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/health"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/httpserver"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/openfec"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/redis"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/rssproxy"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/statefinance"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting election data API...")

	healthCheckers := make([]ports.HealthChecker, 0, 2)

	// Pick the durable cache medium. Redis survives restarts; the map
	// fallback keeps single-instance deployments running without one.
	var durable ports.DurableCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()

		logger.Info("Connected to Redis successfully")
		durable = redis.NewDurableCache(redisClient, cfg.Redis.Namespace)
		healthCheckers = append(healthCheckers, health.NewRedisHealthChecker(redisClient))
	} else {
		logger.Warn("Redis disabled; durable cache is in-process only")
		durable = cache.NewMapDurable()
	}

	store := cache.NewStore(durable, logger)

	// One shared client for every upstream source.
	httpClient := &http.Client{Timeout: cfg.Sources.HTTPTimeout}
	healthCheckers = append(healthCheckers, health.NewDatasetHealthChecker(httpClient, cfg.Sources.DatasetBaseURL))

	// Upstream clients
	fecClient := openfec.NewClient(cfg.Sources.OpenFECBaseURL, cfg.Sources.OpenFECAPIKey, httpClient, store, cfg.Cache.APITTL, logger)
	stateClient := statefinance.NewClient(cfg.Sources.DatasetBaseURL, httpClient, store, cfg.Cache.APITTL, logger)

	// Feeds are parsed in-process unless an external proxy is configured.
	var feedProxy ports.FeedProxy
	if cfg.Sources.RSSProxyURL != "" {
		feedProxy = rssproxy.NewClient(cfg.Sources.RSSProxyURL, httpClient)
	} else {
		feedProxy = rssproxy.NewFetcher(cfg.Sources.HTTPTimeout, logger)
	}

	// Wire application services
	datasetService := services.NewDatasetService(store, httpClient, cfg.Sources.DatasetBaseURL, cfg.Cache.DataTTL, logger)
	financeService := services.NewFinanceService(fecClient, stateClient, cfg.Sources.State, cfg.Sources.Cycle, logger)
	newsService := services.NewNewsService(store, feedProxy, cfg.Cache.RSSTTL, logger)

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
	}

	deps := httpserver.ServerDeps{
		DatasetService: datasetService,
		FinanceService: financeService,
		NewsService:    newsService,
		FeedProxy:      feedProxy,
		HealthCheckers: healthCheckers,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
