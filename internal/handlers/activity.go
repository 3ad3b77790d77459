package handlers

import (
	"net/http"
	"strings"

	"github.com/PsySom/ready-set-prompt/internal/apierror"
	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/service"
	"github.com/gin-gonic/gin"
)

// ActivityHandler handles activity and template HTTP requests
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// CreateActivity handles POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request payload"))
		return
	}

	log := logger.Ctx(c.Request.Context())

	activity, err := h.activityService.CreateActivity(c.Request.Context(), userID.(string), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "invalid") {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please check your input and try again"))
			return
		}
		log.Error("failed to create activity", logger.Err(err), logger.String("user_id", userID.(string)))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// GetActivities handles GET /api/v1/activities?from=&to=
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	activities, err := h.activityService.GetActivities(c.Request.Context(), userID.(string), from, to)
	if err != nil {
		if strings.Contains(err.Error(), "invalid date range") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// UpdateActivity handles PATCH /api/v1/activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request payload"))
		return
	}

	activityID := c.Param("id")
	activity, err := h.activityService.UpdateActivity(c.Request.Context(), userID.(string), activityID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Activity", activityID))
			return
		}
		if strings.Contains(err.Error(), "invalid") {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please check your input and try again"))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, activity)
}

// ToggleComplete handles POST /api/v1/activities/:id/toggle
func (h *ActivityHandler) ToggleComplete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	activityID := c.Param("id")
	activity, err := h.activityService.ToggleComplete(c.Request.Context(), userID.(string), activityID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Activity", activityID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity handles DELETE /api/v1/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	activityID := c.Param("id")
	if err := h.activityService.DeleteActivity(c.Request.Context(), userID.(string), activityID); err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Activity", activityID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}

// ListTemplates handles GET /api/v1/activity-templates
func (h *ActivityHandler) ListTemplates(c *gin.Context) {
	if _, exists := c.Get("user_id"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	templates, err := h.activityService.ListTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
	})
}
