package service

import (
	"context"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// TrackerService defines the interface for tracker entry business logic
type TrackerService interface {
	CreateEntry(ctx context.Context, userID string, req *models.CreateTrackerEntryRequest) (*models.TrackerEntry, error)
	GetEntries(ctx context.Context, userID string, from, to models.Date) ([]models.TrackerEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// ActivityService defines the interface for activity business logic
type ActivityService interface {
	CreateActivity(ctx context.Context, userID string, req *models.CreateActivityRequest) (*models.Activity, error)
	GetActivities(ctx context.Context, userID string, from, to models.Date) ([]models.Activity, error)
	UpdateActivity(ctx context.Context, userID, activityID string, req *models.UpdateActivityRequest) (*models.Activity, error)
	ToggleComplete(ctx context.Context, userID, activityID string) (*models.Activity, error)
	DeleteActivity(ctx context.Context, userID, activityID string) error
	ListTemplates(ctx context.Context) ([]models.ActivityTemplate, error)
}

// JournalService defines the interface for journal business logic
type JournalService interface {
	StartSession(ctx context.Context, userID string, req *models.StartJournalSessionRequest) (*models.JournalSession, error)
	GetSession(ctx context.Context, userID, sessionID string) (*models.JournalSession, error)
	GetSessions(ctx context.Context, userID string, since time.Time) ([]models.JournalSession, error)
	AppendMessage(ctx context.Context, userID, sessionID string, req *models.AppendJournalMessageRequest) (*models.JournalMessage, error)
	EndSession(ctx context.Context, userID, sessionID string) (*models.JournalSession, error)
}

// InsightsService defines the interface for the analytics read side
type InsightsService interface {
	GetInsights(ctx context.Context, userID, period string) (*models.InsightsResponse, error)
	Export(ctx context.Context, userID, period string) (*models.InsightsExport, error)
}

// RecommendationService defines the interface for the recommendation
// lifecycle: generation, listing, accept and dismiss.
type RecommendationService interface {
	Generate(ctx context.Context, userID string) ([]models.Recommendation, error)
	GetOpen(ctx context.Context, userID string, priority *int) ([]models.Recommendation, error)
	Accept(ctx context.Context, userID, recommendationID string) (*models.Activity, error)
	Dismiss(ctx context.Context, userID, recommendationID string) (*models.Recommendation, error)
}
