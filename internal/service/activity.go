package service

import (
	"context"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/internal/repository"
)

type activityService struct {
	activityRepo repository.ActivityRepository
	templateRepo repository.TemplateRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repository.ActivityRepository, templateRepo repository.TemplateRepository) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		templateRepo: templateRepo,
	}
}

func (s *activityService) CreateActivity(ctx context.Context, userID string, req *models.CreateActivityRequest) (*models.Activity, error) {
	if !req.Category.Valid() {
		return nil, fmt.Errorf("invalid category %q", string(req.Category))
	}
	if !req.ImpactType.Valid() {
		return nil, fmt.Errorf("invalid impact type %q", string(req.ImpactType))
	}

	// A template reference must resolve, but the activity keeps its own copy
	// of the fields so later template edits do not rewrite history.
	if req.TemplateID != nil {
		if _, err := s.templateRepo.GetByID(ctx, *req.TemplateID); err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
	}

	activity := &models.Activity{
		UserID:          userID,
		Title:           req.Title,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		ImpactType:      req.ImpactType,
		Status:          models.StatusPlanned,
		TemplateID:      req.TemplateID,
	}

	return s.activityRepo.Create(ctx, activity)
}

func (s *activityService) GetActivities(ctx context.Context, userID string, from, to models.Date) ([]models.Activity, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: %s is after %s", from, to)
	}
	return s.activityRepo.GetByUserIDAndDateRange(ctx, userID, from, to)
}

func (s *activityService) UpdateActivity(ctx context.Context, userID, activityID string, req *models.UpdateActivityRequest) (*models.Activity, error) {
	existing, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("activity not found")
	}

	if req.Category != nil && !req.Category.Valid() {
		return nil, fmt.Errorf("invalid category %q", string(*req.Category))
	}
	if req.ImpactType != nil && !req.ImpactType.Valid() {
		return nil, fmt.Errorf("invalid impact type %q", string(*req.ImpactType))
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", string(*req.Status))
	}
	if req.StartTime.Set && req.StartTime.Valid {
		if _, err := models.ParseTimeOfDay(req.StartTime.Value); err != nil {
			return nil, fmt.Errorf("invalid start time: %w", err)
		}
	}

	return s.activityRepo.Update(ctx, activityID, req)
}

// ToggleComplete flips an activity between completed and planned.
func (s *activityService) ToggleComplete(ctx context.Context, userID, activityID string) (*models.Activity, error) {
	existing, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("activity not found")
	}

	next := models.StatusCompleted
	if existing.Status == models.StatusCompleted {
		next = models.StatusPlanned
	}
	return s.activityRepo.Update(ctx, activityID, &models.UpdateActivityRequest{Status: &next})
}

func (s *activityService) DeleteActivity(ctx context.Context, userID, activityID string) error {
	existing, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("activity not found")
	}
	return s.activityRepo.Delete(ctx, activityID)
}

func (s *activityService) ListTemplates(ctx context.Context) ([]models.ActivityTemplate, error) {
	return s.templateRepo.List(ctx)
}
