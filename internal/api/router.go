package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/api/handlers"
	"github.com/statsight/sportsdash/internal/api/middleware"
	"github.com/statsight/sportsdash/internal/providers"
	"github.com/statsight/sportsdash/internal/services"
	"github.com/statsight/sportsdash/pkg/config"
)

// Deps carries everything route setup needs. Limiters are injected,
// not globals, so tests can run independent instances.
type Deps struct {
	Config         *config.Config
	Logger         *logrus.Logger
	DataService    *services.DataService
	Client         *providers.Client
	ChainCfg       providers.ChainConfig
	AIService      *services.AIService
	DataFetcher    *services.DataFetcherService
	GeneralLimiter *services.RateLimiter
	AILimiter      *services.RateLimiter
}

// SetupRoutes configures all routes on the router
func SetupRoutes(router *gin.Engine, deps Deps) {
	dataHandler := handlers.NewDataHandler(deps.DataService, deps.Client, deps.ChainCfg, deps.Logger)
	aiHandler := handlers.NewAIHandler(deps.AIService, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DataFetcher)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/health/status", healthHandler.GetStatus)

	// Generated reports are plain files under the reports dir
	router.Static("/reports", deps.Config.ReportsDir)

	// Data endpoints share the general per-IP limit
	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.RateLimit(deps.GeneralLimiter))
	{
		apiGroup.GET("/sports", dataHandler.ListSports)
		apiGroup.GET("/data/:sport", dataHandler.GetData)
		apiGroup.GET("/data/:sport/metrics", dataHandler.GetMetrics)
		apiGroup.GET("/baseball/teams", dataHandler.GetBaseballTeams)
		apiGroup.GET("/baseball/stats", dataHandler.GetBaseballStats)
	}

	// AI forwarding endpoints get a stricter limit
	aiGroup := router.Group("/ai")
	aiGroup.Use(middleware.RateLimit(deps.AILimiter))
	aiHandler.RegisterRoutes(aiGroup)
}
