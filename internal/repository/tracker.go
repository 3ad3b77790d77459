package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
)

type trackerEntryRepository struct {
	client *supabase.Client
}

// NewTrackerEntryRepository creates a new tracker entry repository
func NewTrackerEntryRepository(client *supabase.Client) TrackerEntryRepository {
	return &trackerEntryRepository{client: client}
}

func (r *trackerEntryRepository) Create(ctx context.Context, entry *models.TrackerEntry) (*models.TrackerEntry, error) {
	data := map[string]interface{}{
		"user_id":    entry.UserID,
		"entry_date": entry.EntryDate.String(),
	}

	if entry.EntryTime != nil {
		data["entry_time"] = entry.EntryTime.String()
	}
	if entry.MoodScore != nil {
		data["mood_score"] = *entry.MoodScore
	}
	if entry.StressLevel != nil {
		data["stress_level"] = *entry.StressLevel
	}
	if entry.AnxietyLevel != nil {
		data["anxiety_level"] = *entry.AnxietyLevel
	}
	if entry.EnergyLevel != nil {
		data["energy_level"] = *entry.EnergyLevel
	}
	if entry.ProcessSatisfaction != nil {
		data["process_satisfaction"] = *entry.ProcessSatisfaction
	}
	if entry.ResultSatisfaction != nil {
		data["result_satisfaction"] = *entry.ResultSatisfaction
	}

	body, err := r.client.Insert("tracker_entries", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker entry: %w", err)
	}

	var entries []models.TrackerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no tracker entry returned")
	}

	return &entries[0], nil
}

func (r *trackerEntryRepository) AddEmotions(ctx context.Context, entryID string, emotions []models.Emotion) ([]models.Emotion, error) {
	if len(emotions) == 0 {
		return []models.Emotion{}, nil
	}

	// PostgREST requires identical keys across all objects in a batch insert
	insertData := make([]map[string]interface{}, 0, len(emotions))
	for _, e := range emotions {
		insertData = append(insertData, map[string]interface{}{
			"entry_id":  entryID,
			"label":     e.Label,
			"intensity": e.Intensity,
			"category":  e.Category,
		})
	}

	body, err := r.client.Insert("tracker_emotions", insertData)
	if err != nil {
		return nil, fmt.Errorf("failed to add emotions: %w", err)
	}

	var created []models.Emotion
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return created, nil
}

func (r *trackerEntryRepository) GetByID(ctx context.Context, id string) (*models.TrackerEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*,tracker_emotions(*)",
	}

	body, err := r.client.Query("tracker_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker entry: %w", err)
	}

	var entries []models.TrackerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("tracker entry not found")
	}

	return &entries[0], nil
}

func (r *trackerEntryRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, from, to models.Date) ([]models.TrackerEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(entry_date.gte.%s,entry_date.lte.%s)", from.String(), to.String()),
		"select":  "*,tracker_emotions(*)",
		"order":   "entry_date.asc",
	}

	body, err := r.client.Query("tracker_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker entries: %w", err)
	}

	var entries []models.TrackerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *trackerEntryRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("tracker_entries", id); err != nil {
		return fmt.Errorf("failed to delete tracker entry: %w", err)
	}
	return nil
}
