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

// TrackerHandler handles tracker entry HTTP requests
type TrackerHandler struct {
	trackerService service.TrackerService
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		trackerService: trackerService,
	}
}

// CreateEntry handles POST /api/v1/tracker/entries
func (h *TrackerHandler) CreateEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreateTrackerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request payload"))
		return
	}

	log := logger.Ctx(c.Request.Context())

	entry, err := h.trackerService.CreateEntry(c.Request.Context(), userID.(string), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "out of range") || strings.Contains(err.Error(), "invalid emotion") {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please check your input and try again"))
			return
		}
		log.Error("failed to create tracker entry", logger.Err(err), logger.String("user_id", userID.(string)))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntries handles GET /api/v1/tracker/entries?from=&to=
func (h *TrackerHandler) GetEntries(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	from, to, ok := dateRangeQuery(c)
	if !ok {
		return
	}

	entries, err := h.trackerService.GetEntries(c.Request.Context(), userID.(string), from, to)
	if err != nil {
		if strings.Contains(err.Error(), "invalid date range") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// DeleteEntry handles DELETE /api/v1/tracker/entries/:id
func (h *TrackerHandler) DeleteEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	entryID := c.Param("id")
	if err := h.trackerService.DeleteEntry(c.Request.Context(), userID.(string), entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Tracker entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}

// dateRangeQuery parses required from/to query parameters as calendar dates.
// On failure it writes a 400 response and returns ok=false.
func dateRangeQuery(c *gin.Context) (from, to models.Date, ok bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required (YYYY-MM-DD)"})
		return from, to, false
	}

	var err error
	if from, err = models.ParseDate(fromStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, use YYYY-MM-DD"})
		return from, to, false
	}
	if to, err = models.ParseDate(toStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, use YYYY-MM-DD"})
		return from, to, false
	}
	return from, to, true
}
