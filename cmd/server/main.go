package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/statsight/sportsdash/internal/api"
	"github.com/statsight/sportsdash/internal/api/middleware"
	"github.com/statsight/sportsdash/internal/providers"
	"github.com/statsight/sportsdash/internal/services"
	"github.com/statsight/sportsdash/internal/sports"
	"github.com/statsight/sportsdash/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Initialize the cache directory
	cache, err := services.NewFileCache(cfg.CacheDir, cfg.CacheTTL, logger)
	if err != nil {
		logrus.Fatalf("Failed to initialize cache: %v", err)
	}

	// Initialize upstream access
	client := providers.NewClient(cfg.UpstreamTimeout, cfg.UpstreamRPS, logger)
	chainCfg := providers.ChainConfig{APIKey: cfg.SportsAPIKey}
	dataService := services.NewDataService(client, cache, chainCfg, logger)
	aiService := services.NewAIService(cfg.GeminiAPIKey, "", "", cfg.ReportsDir, logger)

	// Per-IP limiters: general API traffic and the stricter AI budget
	generalLimiter := services.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	aiLimiter := services.NewRateLimiter(cfg.AIRateLimitMax, cfg.RateLimitWindow)

	// Optional background cache warming and sweeps
	var dataFetcher *services.DataFetcherService
	if cfg.EnableBackgroundJobs {
		fetchInterval, err := time.ParseDuration(cfg.RefreshInterval)
		if err != nil {
			logrus.Warnf("Invalid refresh interval, using default 2h: %v", err)
			fetchInterval = 2 * time.Hour
		}

		warmSports := make([]sports.Sport, 0, len(cfg.RefreshSports))
		for _, name := range cfg.RefreshSports {
			s := sports.Sport(name)
			if sports.IsSupported(s) {
				warmSports = append(warmSports, s)
			} else {
				logrus.Warnf("Ignoring unknown refresh sport %q", name)
			}
		}

		dataFetcher = services.NewDataFetcherService(
			dataService, cache,
			[]*services.RateLimiter{generalLimiter, aiLimiter},
			logger, fetchInterval, warmSports,
		)
		if err := dataFetcher.Start(); err != nil {
			logrus.Errorf("Failed to start data fetcher: %v", err)
		}
		defer dataFetcher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	api.SetupRoutes(router, api.Deps{
		Config:         cfg,
		Logger:         logger,
		DataService:    dataService,
		Client:         client,
		ChainCfg:       chainCfg,
		AIService:      aiService,
		DataFetcher:    dataFetcher,
		GeneralLimiter: generalLimiter,
		AILimiter:      aiLimiter,
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
