package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/services"
	"github.com/statsight/sportsdash/pkg/utils"
)

// AIHandler serves the generative-AI narrative endpoints. These are
// prompt-templated passthroughs; the handler only validates input and
// shapes responses.
type AIHandler struct {
	ai     *services.AIService
	logger *logrus.Logger
}

func NewAIHandler(ai *services.AIService, logger *logrus.Logger) *AIHandler {
	return &AIHandler{ai: ai, logger: logger}
}

// RegisterRoutes mounts all AI endpoints on the group
func (h *AIHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/insights/:sport", h.Insights)
	group.POST("/chat", h.Chat)
	group.POST("/sentiment/:team", h.Sentiment)
	group.POST("/semantic", h.Semantic)
	group.POST("/explain/:sport", h.Explain)
	group.POST("/recommendations", h.Recommendations)
	group.POST("/predict/:sport", h.Predict)
	group.POST("/dashboard/recommend", h.DashboardRecommend)
	group.POST("/reports/:sport", h.Reports)
}

// Insights handles POST /ai/insights/:sport
func (h *AIHandler) Insights(c *gin.Context) {
	var req struct {
		Data any `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		utils.SendValidationError(c, "sport and data are required")
		return
	}

	summary, err := h.ai.Insights(c.Request.Context(), c.Param("sport"), req.Data)
	if err != nil {
		h.sendAIError(c, "failed to get AI insights", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Chat handles POST /ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
		Context  any    `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		utils.SendValidationError(c, "user question is required")
		return
	}

	answer, err := h.ai.Chat(c.Request.Context(), req.Question, req.Context)
	if err != nil {
		h.sendAIError(c, "failed to get chat answer", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Sentiment handles POST /ai/sentiment/:team
func (h *AIHandler) Sentiment(c *gin.Context) {
	team := c.Param("team")
	if team == "" {
		utils.SendValidationError(c, "team is required")
		return
	}

	sentiment, err := h.ai.Sentiment(c.Request.Context(), team)
	if err != nil {
		h.sendAIError(c, "failed to get sentiment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentiment": sentiment})
}

// Semantic handles POST /ai/semantic
func (h *AIHandler) Semantic(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
		Data  any    `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" || req.Data == nil {
		utils.SendValidationError(c, "query and data are required")
		return
	}

	filters, raw, err := h.ai.Semantic(c.Request.Context(), req.Query, req.Data)
	if err != nil {
		h.sendAIError(c, "failed to get semantic search results", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": filters, "raw": raw})
}

// Explain handles POST /ai/explain/:sport
func (h *AIHandler) Explain(c *gin.Context) {
	var req struct {
		Anomaly any `json:"anomaly"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Anomaly == nil {
		utils.SendValidationError(c, "sport and anomaly data are required")
		return
	}

	explanation, err := h.ai.Explain(c.Request.Context(), c.Param("sport"), req.Anomaly)
	if err != nil {
		h.sendAIError(c, "failed to get anomaly explanation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"explanation": explanation})
}

// Recommendations handles POST /ai/recommendations
func (h *AIHandler) Recommendations(c *gin.Context) {
	var req struct {
		Selections []any `json:"selections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Selections == nil {
		utils.SendValidationError(c, "user selections are required")
		return
	}

	recommendations, raw, err := h.ai.Recommendations(c.Request.Context(), req.Selections)
	if err != nil {
		h.sendAIError(c, "failed to get AI recommendations", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations, "raw": raw})
}

// Predict handles POST /ai/predict/:sport
func (h *AIHandler) Predict(c *gin.Context) {
	var req struct {
		Data any `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		utils.SendValidationError(c, "sport and data are required")
		return
	}

	predictions, raw, err := h.ai.Predict(c.Request.Context(), c.Param("sport"), req.Data)
	if err != nil {
		h.sendAIError(c, "failed to get AI predictions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions, "raw": raw})
}

// DashboardRecommend handles POST /ai/dashboard/recommend
func (h *AIHandler) DashboardRecommend(c *gin.Context) {
	layout, err := h.ai.DashboardLayout(c.Request.Context())
	if err != nil {
		h.sendAIError(c, "failed to get dashboard layout recommendation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// Reports handles POST /ai/reports/:sport
func (h *AIHandler) Reports(c *gin.Context) {
	var req struct {
		Data []any `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Data) == 0 {
		utils.SendValidationError(c, "missing or invalid data array")
		return
	}

	markdown, filename, err := h.ai.Report(c.Request.Context(), c.Param("sport"), req.Data)
	if err != nil {
		h.sendAIError(c, "failed to generate report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"markdown":    markdown,
		"downloadUrl": "/reports/" + filename,
	})
}

func (h *AIHandler) sendAIError(c *gin.Context, message string, err error) {
	if errors.Is(err, services.ErrMissingGeminiKey) {
		utils.SendConfigurationError(c, err.Error())
		return
	}
	h.logger.Errorf("%s: %v", message, err)
	utils.SendError(c, http.StatusBadGateway, utils.NewAppError(utils.ErrCodeUpstreamFailure, message))
}
