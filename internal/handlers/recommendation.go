package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/PsySom/ready-set-prompt/internal/apierror"
	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/service"
	"github.com/gin-gonic/gin"
)

// RecommendationHandler handles recommendation lifecycle HTTP requests
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
	}
}

// GetRecommendations returns the user's open recommendations grouped by
// priority tier
// GET /api/v1/recommendations?priority=
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var priority *int
	if priorityStr := c.Query("priority"); priorityStr != "" {
		p, err := strconv.Atoi(priorityStr)
		if err != nil || p < 1 || p > 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be 1, 2 or 3"})
			return
		}
		priority = &p
	}

	recs, err := h.recommendationService.GetOpen(c.Request.Context(), userID.(string), priority)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	grouped := make(map[string][]models.Recommendation)
	for _, r := range recs {
		key := "priority_" + strconv.Itoa(r.Priority)
		grouped[key] = append(grouped[key], r)
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": grouped,
		"count":           len(recs),
	})
}

// Generate recomputes recommendations from the current tracking window
// and returns the newly created ones
// POST /api/v1/recommendations/generate
func (h *RecommendationHandler) Generate(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	log := logger.Ctx(c.Request.Context())

	created, err := h.recommendationService.Generate(c.Request.Context(), userID.(string))
	if err != nil {
		requestID := apierror.GetRequestID(c)
		log.Error("failed to generate recommendations", logger.Err(err), logger.String("user_id", userID.(string)))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"count":   len(created),
	})
}

// Accept marks a recommendation accepted and schedules the suggested
// activity from its template
// POST /api/v1/recommendations/:id/accept
func (h *RecommendationHandler) Accept(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	log := logger.Ctx(c.Request.Context())
	recommendationID := c.Param("id")

	activity, err := h.recommendationService.Accept(c.Request.Context(), userID.(string), recommendationID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Recommendation", recommendationID))
			return
		}
		if strings.Contains(err.Error(), "no longer open") {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error()))
			return
		}
		log.Error("failed to accept recommendation", logger.Err(err),
			logger.String("user_id", userID.(string)),
			logger.String("recommendation_id", recommendationID))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"activity": activity,
	})
}

// Dismiss marks a recommendation dismissed
// POST /api/v1/recommendations/:id/dismiss
func (h *RecommendationHandler) Dismiss(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	recommendationID := c.Param("id")

	rec, err := h.recommendationService.Dismiss(c.Request.Context(), userID.(string), recommendationID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Recommendation", recommendationID))
			return
		}
		if strings.Contains(err.Error(), "no longer open") {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error()))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, rec)
}
