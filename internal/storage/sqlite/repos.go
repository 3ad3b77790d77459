package sqlite

import (
	"context"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/repository"
)

// The store implements every repository on one shared connection; these
// views carve it into the per-entity interfaces the services expect.

// TrackerEntries returns the tracker entry repository view of the store.
func (s *Store) TrackerEntries() repository.TrackerEntryRepository { return trackerEntries{s} }

// Activities returns the activity repository view of the store.
func (s *Store) Activities() repository.ActivityRepository { return activities{s} }

// Journals returns the journal repository view of the store.
func (s *Store) Journals() repository.JournalRepository { return s }

// Templates returns the template repository view of the store.
func (s *Store) Templates() repository.TemplateRepository { return templates{s} }

// Recommendations returns the recommendation repository view of the store.
func (s *Store) Recommendations() repository.RecommendationRepository { return recommendations{s} }

// Rules returns the rule repository view of the store.
func (s *Store) Rules() repository.RuleRepository { return rules{s} }

type trackerEntries struct{ s *Store }

func (r trackerEntries) Create(ctx context.Context, entry *models.TrackerEntry) (*models.TrackerEntry, error) {
	return r.s.CreateEntry(ctx, entry)
}

func (r trackerEntries) AddEmotions(ctx context.Context, entryID string, emotions []models.Emotion) ([]models.Emotion, error) {
	return r.s.AddEmotions(ctx, entryID, emotions)
}

func (r trackerEntries) GetByID(ctx context.Context, id string) (*models.TrackerEntry, error) {
	return r.s.GetEntryByID(ctx, id)
}

func (r trackerEntries) GetByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.TrackerEntry, error) {
	return r.s.GetEntriesByUserIDAndDateRange(ctx, userID, from, to)
}

func (r trackerEntries) Delete(ctx context.Context, id string) error {
	return r.s.DeleteEntry(ctx, id)
}

type activities struct{ s *Store }

func (r activities) Create(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	return r.s.CreateActivity(ctx, activity)
}

func (r activities) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	return r.s.GetActivityByID(ctx, id)
}

func (r activities) GetByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.Activity, error) {
	return r.s.GetActivitiesByUserIDAndDateRange(ctx, userID, from, to)
}

func (r activities) Update(ctx context.Context, id string, req *models.UpdateActivityRequest) (*models.Activity, error) {
	return r.s.UpdateActivity(ctx, id, req)
}

func (r activities) Delete(ctx context.Context, id string) error {
	return r.s.DeleteActivity(ctx, id)
}

type templates struct{ s *Store }

func (r templates) GetByID(ctx context.Context, id string) (*models.ActivityTemplate, error) {
	return r.s.GetTemplateByID(ctx, id)
}

func (r templates) List(ctx context.Context) ([]models.ActivityTemplate, error) {
	return r.s.ListTemplates(ctx)
}

type recommendations struct{ s *Store }

func (r recommendations) GetByID(ctx context.Context, id string) (*models.Recommendation, error) {
	return r.s.GetRecommendationByID(ctx, id)
}

func (r recommendations) ListOpen(ctx context.Context, userID string, now time.Time) ([]models.Recommendation, error) {
	return r.s.ListOpenRecommendations(ctx, userID, now)
}

func (r recommendations) CreateBatch(ctx context.Context, recs []models.Recommendation) ([]models.Recommendation, error) {
	return r.s.CreateRecommendations(ctx, recs)
}

func (r recommendations) MarkAccepted(ctx context.Context, id string) (*models.Recommendation, error) {
	return r.s.MarkAccepted(ctx, id)
}

func (r recommendations) MarkDismissed(ctx context.Context, id string) (*models.Recommendation, error) {
	return r.s.MarkDismissed(ctx, id)
}

type rules struct{ s *Store }

func (r rules) ListEnabled(ctx context.Context) ([]models.RecommendationRule, error) {
	return r.s.ListEnabledRules(ctx)
}
