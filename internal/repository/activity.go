package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
)

type activityRepository struct {
	client *supabase.Client
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(client *supabase.Client) ActivityRepository {
	return &activityRepository{client: client}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	data := map[string]interface{}{
		"user_id":     activity.UserID,
		"title":       activity.Title,
		"date":        activity.Date.String(),
		"category":    activity.Category,
		"impact_type": activity.ImpactType,
		"status":      activity.Status,
	}

	if activity.StartTime != nil {
		data["start_time"] = activity.StartTime.String()
	}
	if activity.DurationMinutes != nil {
		data["duration_minutes"] = *activity.DurationMinutes
	}
	if activity.TemplateID != nil {
		data["template_id"] = *activity.TemplateID
	}
	if activity.RecommendationID != nil {
		data["recommendation_id"] = *activity.RecommendationID
	}

	body, err := r.client.Insert("activities", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(activities) == 0 {
		return nil, fmt.Errorf("no activity returned")
	}

	return &activities[0], nil
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	query := map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", id),
	}

	body, err := r.client.Query("activities", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(activities) == 0 {
		return nil, fmt.Errorf("activity not found")
	}

	return &activities[0], nil
}

func (r *activityRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.Activity, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", from.String(), to.String()),
		"order":   "date.asc,start_time.asc.nullslast",
	}

	body, err := r.client.Query("activities", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, id string, req *models.UpdateActivityRequest) (*models.Activity, error) {
	data := make(map[string]interface{})

	if req.Title != nil {
		data["title"] = *req.Title
	}
	if req.Date != nil {
		data["date"] = req.Date.String()
	}
	// Set means the key was present in the payload: a string reschedules the
	// activity, an explicit null turns it into an "anytime" activity.
	if req.StartTime.Set {
		if req.StartTime.Valid {
			data["start_time"] = req.StartTime.Value
		} else {
			data["start_time"] = nil
		}
	}
	if req.DurationMinutes != nil {
		data["duration_minutes"] = *req.DurationMinutes
	}
	if req.Category != nil {
		data["category"] = *req.Category
	}
	if req.ImpactType != nil {
		data["impact_type"] = *req.ImpactType
	}
	if req.Status != nil {
		data["status"] = *req.Status
	}

	body, err := r.client.Update("activities", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	var activities []models.Activity
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(activities) == 0 {
		return nil, fmt.Errorf("activity not found")
	}

	return &activities[0], nil
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("activities", id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}
