package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/apierror"
	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/service"
	"github.com/gin-gonic/gin"
)

// defaultJournalLookback bounds GET /journal/sessions when the client
// does not pass ?since=.
const defaultJournalLookback = 30 * 24 * time.Hour

// JournalHandler handles journal session HTTP requests
type JournalHandler struct {
	journalService service.JournalService
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalService service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// StartSession handles POST /api/v1/journal/sessions
func (h *JournalHandler) StartSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.StartJournalSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request payload"))
		return
	}

	session, err := h.journalService.StartSession(c.Request.Context(), userID.(string), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "invalid") {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Please check your input and try again"))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSessions handles GET /api/v1/journal/sessions?since=
func (h *JournalHandler) GetSessions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	since := time.Now().Add(-defaultJournalLookback)
	if sinceStr := c.Query("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since timestamp, use RFC3339"})
			return
		}
		since = parsed
	}

	sessions, err := h.journalService.GetSessions(c.Request.Context(), userID.(string), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession handles GET /api/v1/journal/sessions/:id
func (h *JournalHandler) GetSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	sessionID := c.Param("id")
	session, err := h.journalService.GetSession(c.Request.Context(), userID.(string), sessionID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Journal session", sessionID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, session)
}

// AppendMessage handles POST /api/v1/journal/sessions/:id/messages
func (h *JournalHandler) AppendMessage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.AppendJournalMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request payload"))
		return
	}

	sessionID := c.Param("id")
	message, err := h.journalService.AppendMessage(c.Request.Context(), userID.(string), sessionID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Journal session", sessionID))
			return
		}
		if strings.Contains(err.Error(), "ended") || strings.Contains(err.Error(), "invalid") {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error()))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, message)
}

// EndSession handles POST /api/v1/journal/sessions/:id/end
func (h *JournalHandler) EndSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	sessionID := c.Param("id")
	session, err := h.journalService.EndSession(c.Request.Context(), userID.(string), sessionID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if strings.Contains(err.Error(), "not found") {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Journal session", sessionID))
			return
		}
		if strings.Contains(err.Error(), "ended") {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error()))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, session)
}
