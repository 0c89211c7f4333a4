package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/providers"
	"github.com/statsight/sportsdash/internal/services"
	"github.com/statsight/sportsdash/internal/sports"
	"github.com/statsight/sportsdash/pkg/utils"
)

// DataHandler serves the chart data endpoints
type DataHandler struct {
	dataService *services.DataService
	client      *providers.Client
	chainCfg    providers.ChainConfig
	logger      *logrus.Logger
}

func NewDataHandler(dataService *services.DataService, client *providers.Client, chainCfg providers.ChainConfig, logger *logrus.Logger) *DataHandler {
	return &DataHandler{
		dataService: dataService,
		client:      client,
		chainCfg:    chainCfg,
		logger:      logger,
	}
}

// GetData handles GET /api/data/:sport?season=YYYY
func (h *DataHandler) GetData(c *gin.Context) {
	sport := sports.Sport(c.Param("sport"))
	season := c.DefaultQuery("season", strconv.Itoa(time.Now().Year()))

	envelope, err := h.dataService.GetData(c.Request.Context(), sport, season)
	if err != nil {
		h.sendDataError(c, sport, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// GetMetrics handles GET /api/data/:sport/metrics?season=YYYY and
// returns the metric selectors present in the sport's current payload
func (h *DataHandler) GetMetrics(c *gin.Context) {
	sport := sports.Sport(c.Param("sport"))
	season := c.DefaultQuery("season", strconv.Itoa(time.Now().Year()))

	metrics, err := h.dataService.GetMetrics(c.Request.Context(), sport, season)
	if err != nil {
		h.sendDataError(c, sport, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sport":   sport,
		"metrics": metrics,
	})
}

// ListSports handles GET /api/sports
func (h *DataHandler) ListSports(c *gin.Context) {
	type sportInfo struct {
		Sport   sports.Sport    `json:"sport"`
		Metrics []sports.Metric `json:"metrics"`
	}

	list := make([]sportInfo, 0, len(sports.Supported()))
	for _, s := range sports.Supported() {
		list = append(list, sportInfo{Sport: s, Metrics: sports.MetricsFor(s)})
	}

	c.JSON(http.StatusOK, gin.H{"sports": list})
}

// GetBaseballTeams handles GET /api/baseball/teams?season=YYYY, a
// direct provider passthrough used by the team-comparison modal
func (h *DataHandler) GetBaseballTeams(c *gin.Context) {
	season := c.DefaultQuery("season", strconv.Itoa(time.Now().Year()))

	h.passthrough(c, "/teams", url.Values{
		"league": {"1"},
		"season": {season},
	})
}

// GetBaseballStats handles GET /api/baseball/stats?team=ID&season=YYYY
func (h *DataHandler) GetBaseballStats(c *gin.Context) {
	team := c.Query("team")
	if team == "" {
		utils.SendValidationError(c, "team query parameter is required")
		return
	}
	season := c.DefaultQuery("season", strconv.Itoa(time.Now().Year()))

	h.passthrough(c, "/teams/statistics", url.Values{
		"league": {"1"},
		"team":   {team},
		"season": {season},
	})
}

func (h *DataHandler) passthrough(c *gin.Context, path string, query url.Values) {
	if h.chainCfg.APIKey == "" {
		utils.SendConfigurationError(c, services.ErrMissingAPIKey.Error())
		return
	}

	baseURL := h.chainCfg.BaseballBaseURL
	if baseURL == "" {
		baseURL = "https://v1.baseball.api-sports.io"
	}

	outcome := h.client.Fetch(c.Request.Context(), providers.Source{
		Name:    "baseball",
		URL:     baseURL + path,
		Query:   query,
		Headers: map[string]string{"x-apisports-key": h.chainCfg.APIKey},
		Unwrap:  providers.UnwrapResponse,
	})
	if !outcome.OK {
		utils.SendError(c, http.StatusBadGateway, utils.NewAppError(utils.ErrCodeUpstreamFailure, outcome.Message))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  outcome.Records,
		"count": len(outcome.Records),
	})
}

func (h *DataHandler) sendDataError(c *gin.Context, sport sports.Sport, err error) {
	switch {
	case errors.Is(err, services.ErrUnsupportedSport):
		utils.SendUnsupportedSport(c, string(sport), sports.SupportedNames())
	case errors.Is(err, services.ErrMissingAPIKey):
		utils.SendConfigurationError(c, err.Error())
	default:
		h.logger.Errorf("Data request for %s failed: %v", sport, err)
		utils.SendInternalError(c, "failed to fetch sports data")
	}
}
