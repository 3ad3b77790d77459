package handlers

import (
	"net/http"
	"strings"

	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/service"
	"github.com/gin-gonic/gin"
)

// InsightsHandler handles insights-related HTTP requests
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
	}
}

// GetInsights returns overview stats, patterns, mood trend and open
// recommendations for the authenticated user
// GET /api/v1/insights?period=week|month|3months|year
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	log := logger.Ctx(c.Request.Context())
	period := c.Query("period")

	insights, err := h.insightsService.GetInsights(c.Request.Context(), userID.(string), period)
	if err != nil {
		if strings.Contains(err.Error(), "unknown period") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("failed to get insights", logger.Err(err), logger.String("user_id", userID.(string)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// Export returns the raw tracked records for the window as a JSON dump
// GET /api/v1/insights/export?period=week|month|3months|year
func (h *InsightsHandler) Export(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	log := logger.Ctx(c.Request.Context())
	period := c.Query("period")

	export, err := h.insightsService.Export(c.Request.Context(), userID.(string), period)
	if err != nil {
		if strings.Contains(err.Error(), "unknown period") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("failed to export insights data", logger.Err(err), logger.String("user_id", userID.(string)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="psysom-export.json"`)
	c.JSON(http.StatusOK, export)
}
