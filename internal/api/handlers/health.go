package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statsight/sportsdash/internal/services"
)

// HealthHandler serves liveness and scheduler status
type HealthHandler struct {
	dataFetcher *services.DataFetcherService
}

func NewHealthHandler(dataFetcher *services.DataFetcherService) *HealthHandler {
	return &HealthHandler{dataFetcher: dataFetcher}
}

// GetHealth always returns 200 while the server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "sportsdash",
	})
}

// GetStatus reports background-job scheduling state
func (h *HealthHandler) GetStatus(c *gin.Context) {
	if h.dataFetcher == nil {
		c.JSON(http.StatusOK, gin.H{"background_jobs": "disabled"})
		return
	}
	c.JSON(http.StatusOK, h.dataFetcher.GetFetchStatus())
}
