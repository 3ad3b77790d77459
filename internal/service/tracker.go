package service

import (
	"context"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/repository"
)

type trackerService struct {
	entryRepo repository.TrackerEntryRepository
}

// NewTrackerService creates a new tracker service
func NewTrackerService(entryRepo repository.TrackerEntryRepository) TrackerService {
	return &trackerService{entryRepo: entryRepo}
}

func (s *trackerService) CreateEntry(ctx context.Context, userID string, req *models.CreateTrackerEntryRequest) (*models.TrackerEntry, error) {
	if err := validateEntryDimensions(req); err != nil {
		return nil, err
	}
	for _, e := range req.Emotions {
		if !e.Category.Valid() {
			return nil, fmt.Errorf("invalid emotion category %q", string(e.Category))
		}
	}

	entry := &models.TrackerEntry{
		UserID:              userID,
		EntryDate:           req.EntryDate,
		EntryTime:           req.EntryTime,
		MoodScore:           req.MoodScore,
		StressLevel:         req.StressLevel,
		AnxietyLevel:        req.AnxietyLevel,
		EnergyLevel:         req.EnergyLevel,
		ProcessSatisfaction: req.ProcessSatisfaction,
		ResultSatisfaction:  req.ResultSatisfaction,
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	if len(req.Emotions) > 0 {
		emotions := make([]models.Emotion, 0, len(req.Emotions))
		for _, e := range req.Emotions {
			emotions = append(emotions, models.Emotion{
				Label:     e.Label,
				Intensity: e.Intensity,
				Category:  e.Category,
			})
		}
		attached, err := s.entryRepo.AddEmotions(ctx, created.ID, emotions)
		if err != nil {
			return nil, err
		}
		created.Emotions = attached
	}

	return created, nil
}

func (s *trackerService) GetEntries(ctx context.Context, userID string, from, to models.Date) ([]models.TrackerEntry, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: %s is after %s", from, to)
	}
	return s.entryRepo.GetByUserIDAndDateRange(ctx, userID, from, to)
}

func (s *trackerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return fmt.Errorf("tracker entry not found")
	}
	return s.entryRepo.Delete(ctx, entryID)
}

// validateEntryDimensions range-checks every dimension the payload carries.
// Bipolar scores run -5..+5, level scales 0..10.
func validateEntryDimensions(req *models.CreateTrackerEntryRequest) error {
	check := func(name string, v *int, min, max int) error {
		if v != nil && (*v < min || *v > max) {
			return fmt.Errorf("%s %d out of range %d..%d", name, *v, min, max)
		}
		return nil
	}

	if err := check("mood_score", req.MoodScore, -5, 5); err != nil {
		return err
	}
	if err := check("stress_level", req.StressLevel, 0, 10); err != nil {
		return err
	}
	if err := check("anxiety_level", req.AnxietyLevel, 0, 10); err != nil {
		return err
	}
	if err := check("energy_level", req.EnergyLevel, -5, 5); err != nil {
		return err
	}
	if err := check("process_satisfaction", req.ProcessSatisfaction, 0, 10); err != nil {
		return err
	}
	return check("result_satisfaction", req.ResultSatisfaction, 0, 10)
}
