package repository

import (
	"context"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// TrackerEntryRepository defines the interface for tracker entry data access
type TrackerEntryRepository interface {
	Create(ctx context.Context, entry *models.TrackerEntry) (*models.TrackerEntry, error)
	AddEmotions(ctx context.Context, entryID string, emotions []models.Emotion) ([]models.Emotion, error)
	GetByID(ctx context.Context, id string) (*models.TrackerEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.TrackerEntry, error)
	Delete(ctx context.Context, id string) error
}

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) (*models.Activity, error)
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.Activity, error)
	Update(ctx context.Context, id string, req *models.UpdateActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
}

// JournalRepository defines the interface for journal session data access
type JournalRepository interface {
	CreateSession(ctx context.Context, session *models.JournalSession) (*models.JournalSession, error)
	GetSessionByID(ctx context.Context, id string) (*models.JournalSession, error)
	GetSessionsByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.JournalSession, error)
	AppendMessage(ctx context.Context, msg *models.JournalMessage) (*models.JournalMessage, error)
	EndSession(ctx context.Context, id string, endedAt time.Time) (*models.JournalSession, error)
}

// TemplateRepository defines the interface for activity template data access
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*models.ActivityTemplate, error)
	List(ctx context.Context) ([]models.ActivityTemplate, error)
}

// RecommendationRepository defines the interface for recommendation data
// access. CreateBatch must not produce a second open recommendation for the
// same user and template: the storage layer enforces that uniqueness and
// silently drops colliding rows.
type RecommendationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Recommendation, error)
	ListOpen(ctx context.Context, userID string, now time.Time) ([]models.Recommendation, error)
	CreateBatch(ctx context.Context, recs []models.Recommendation) ([]models.Recommendation, error)
	MarkAccepted(ctx context.Context, id string) (*models.Recommendation, error)
	MarkDismissed(ctx context.Context, id string) (*models.Recommendation, error)
}

// RuleRepository defines the interface for recommendation rule data access
type RuleRepository interface {
	ListEnabled(ctx context.Context) ([]models.RecommendationRule, error)
}
