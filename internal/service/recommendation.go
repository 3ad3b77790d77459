package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/insights"
	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/repository"
)

// RecommendationConfig tunes the recommendation lifecycle.
type RecommendationConfig struct {
	// WindowDays is how far back Generate looks when evaluating rules.
	WindowDays int
	// TTLDays is how long a generated recommendation stays open before it
	// expires on its own.
	TTLDays int
}

type recommendationService struct {
	entryRepo    repository.TrackerEntryRepository
	activityRepo repository.ActivityRepository
	journalRepo  repository.JournalRepository
	templateRepo repository.TemplateRepository
	recRepo      repository.RecommendationRepository
	ruleRepo     repository.RuleRepository
	engine       *insights.Engine
	cfg          RecommendationConfig
	log          logger.Logger
	now          func() time.Time
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	entryRepo repository.TrackerEntryRepository,
	activityRepo repository.ActivityRepository,
	journalRepo repository.JournalRepository,
	templateRepo repository.TemplateRepository,
	recRepo repository.RecommendationRepository,
	ruleRepo repository.RuleRepository,
	engine *insights.Engine,
	cfg RecommendationConfig,
	log logger.Logger,
) RecommendationService {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if cfg.TTLDays <= 0 {
		cfg.TTLDays = 7
	}
	return &recommendationService{
		entryRepo:    entryRepo,
		activityRepo: activityRepo,
		journalRepo:  journalRepo,
		templateRepo: templateRepo,
		recRepo:      recRepo,
		ruleRepo:     ruleRepo,
		engine:       engine,
		cfg:          cfg,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Generate reconciles the user's open recommendations with what the rules
// currently say: candidates whose template already has an open
// recommendation are dropped by the storage layer, everything else is
// persisted with a fresh expiry. Running it twice in a row changes nothing.
func (s *recommendationService) Generate(ctx context.Context, userID string) ([]models.Recommendation, error) {
	now := s.now()

	to := models.DateOf(now)
	from := to.AddDays(-(s.cfg.WindowDays - 1))

	entries, err := s.entryRepo.GetByUserIDAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracker entries: %w", err)
	}
	activities, err := s.activityRepo.GetByUserIDAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	sessions, err := s.journalRepo.GetSessionsByUserIDSince(ctx, userID, from.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to load journal sessions: %w", err)
	}
	rules, err := s.ruleRepo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	out := s.engine.Analyze(insights.Input{
		Entries:    entries,
		Activities: activities,
		Sessions:   sessions,
		Rules:      rules,
		Now:        now,
	})

	if len(out.Candidates) == 0 {
		return []models.Recommendation{}, nil
	}

	expiresAt := now.AddDate(0, 0, s.cfg.TTLDays)
	recs := make([]models.Recommendation, 0, len(out.Candidates))
	for _, c := range out.Candidates {
		recs = append(recs, models.Recommendation{
			UserID:             userID,
			ActivityTemplateID: c.ActivityTemplateID,
			Reason:             c.Reason,
			Priority:           c.Priority,
			ExpiresAt:          &expiresAt,
		})
	}

	created, err := s.recRepo.CreateBatch(ctx, recs)
	if err != nil {
		return nil, fmt.Errorf("failed to persist recommendations: %w", err)
	}

	s.log.Info("generated recommendations",
		logger.String("user_id", userID),
		logger.Int("candidates", len(out.Candidates)),
		logger.Int("created", len(created)),
	)
	return created, nil
}

func (s *recommendationService) GetOpen(ctx context.Context, userID string, priority *int) ([]models.Recommendation, error) {
	open, err := s.recRepo.ListOpen(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	if priority == nil {
		return open, nil
	}

	filtered := make([]models.Recommendation, 0, len(open))
	for _, rec := range open {
		if rec.Priority == *priority {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// Accept marks the recommendation accepted and schedules an activity from
// its template for today.
func (s *recommendationService) Accept(ctx context.Context, userID, recommendationID string) (*models.Activity, error) {
	now := s.now()

	rec, err := s.recRepo.GetByID(ctx, recommendationID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("recommendation not found")
	}
	if !rec.IsOpen(now) {
		return nil, fmt.Errorf("recommendation is no longer open")
	}

	template, err := s.templateRepo.GetByID(ctx, rec.ActivityTemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	// The storage update only succeeds while the row is still open, so
	// accepting first makes a retry after a partial failure a no-op instead
	// of a second scheduled activity.
	if _, err := s.recRepo.MarkAccepted(ctx, rec.ID); err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.Create(ctx, &models.Activity{
		UserID:           userID,
		Title:            template.Name,
		Date:             models.DateOf(now),
		DurationMinutes:  template.DefaultDurationMinutes,
		Category:         template.Category,
		ImpactType:       template.ImpactType,
		Status:           models.StatusPlanned,
		TemplateID:       &template.ID,
		RecommendationID: &rec.ID,
	})
	if err != nil {
		s.log.Error("recommendation accepted but activity creation failed",
			logger.Err(err),
			logger.String("user_id", userID),
			logger.String("recommendation_id", rec.ID),
		)
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.log.Info("recommendation accepted",
		logger.String("user_id", userID),
		logger.String("recommendation_id", rec.ID),
		logger.String("activity_id", activity.ID),
	)
	return activity, nil
}

func (s *recommendationService) Dismiss(ctx context.Context, userID, recommendationID string) (*models.Recommendation, error) {
	rec, err := s.recRepo.GetByID(ctx, recommendationID)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("recommendation not found")
	}
	if !rec.IsOpen(s.now()) {
		return nil, fmt.Errorf("recommendation is no longer open")
	}
	return s.recRepo.MarkDismissed(ctx, recommendationID)
}
