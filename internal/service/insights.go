package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/insights"
	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/repository"
)

type insightsService struct {
	entryRepo    repository.TrackerEntryRepository
	activityRepo repository.ActivityRepository
	journalRepo  repository.JournalRepository
	recRepo      repository.RecommendationRepository
	ruleRepo     repository.RuleRepository
	engine       *insights.Engine
	now          func() time.Time
}

// NewInsightsService creates a new insights service
func NewInsightsService(
	entryRepo repository.TrackerEntryRepository,
	activityRepo repository.ActivityRepository,
	journalRepo repository.JournalRepository,
	recRepo repository.RecommendationRepository,
	ruleRepo repository.RuleRepository,
	engine *insights.Engine,
) InsightsService {
	return &insightsService{
		entryRepo:    entryRepo,
		activityRepo: activityRepo,
		journalRepo:  journalRepo,
		recRepo:      recRepo,
		ruleRepo:     ruleRepo,
		engine:       engine,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *insightsService) GetInsights(ctx context.Context, userID, period string) (*models.InsightsResponse, error) {
	now := s.now()
	in, err := s.loadWindow(ctx, userID, period, now)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	in.Rules = rules

	out := s.engine.Analyze(*in)

	open, err := s.recRepo.ListOpen(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}

	return &models.InsightsResponse{
		Overview:        out.Overview,
		Patterns:        out.Patterns,
		MoodTrend:       out.MoodTrend,
		Recommendations: open,
		ComputedAt:      now,
	}, nil
}

func (s *insightsService) Export(ctx context.Context, userID, period string) (*models.InsightsExport, error) {
	now := s.now()
	in, err := s.loadWindow(ctx, userID, period, now)
	if err != nil {
		return nil, err
	}

	if period == "" {
		period = "month"
	}
	return &models.InsightsExport{
		Period:          period,
		ExportedAt:      now,
		TrackerEntries:  in.Entries,
		Activities:      in.Activities,
		JournalSessions: in.Sessions,
	}, nil
}

// loadWindow fetches one user's records for the period ending today.
func (s *insightsService) loadWindow(ctx context.Context, userID, period string, now time.Time) (*insights.Input, error) {
	from, to, err := periodWindow(period, now)
	if err != nil {
		return nil, err
	}

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

	return &insights.Input{
		Entries:    entries,
		Activities: activities,
		Sessions:   sessions,
		Now:        now,
	}, nil
}
