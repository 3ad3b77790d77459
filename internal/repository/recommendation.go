package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
)

type recommendationRepository struct {
	client *supabase.Client
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(client *supabase.Client) RecommendationRepository {
	return &recommendationRepository{client: client}
}

func (r *recommendationRepository) GetByID(ctx context.Context, id string) (*models.Recommendation, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*,activity_templates(*)",
	}

	body, err := r.client.Query("user_recommendations", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}

	var recs []models.Recommendation
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("recommendation not found")
	}

	return &recs[0], nil
}

func (r *recommendationRepository) ListOpen(ctx context.Context, userID string, now time.Time) ([]models.Recommendation, error) {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"accepted":  "is.null",
		"dismissed": "eq.false",
		"or":        fmt.Sprintf("(expires_at.is.null,expires_at.gt.%s)", now.Format(time.RFC3339)),
		"select":    "*,activity_templates(*)",
		"order":     "priority.asc,created_at.desc",
	}

	body, err := r.client.Query("user_recommendations", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open recommendations: %w", err)
	}

	var recs []models.Recommendation
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return recs, nil
}

func (r *recommendationRepository) CreateBatch(ctx context.Context, recs []models.Recommendation) ([]models.Recommendation, error) {
	if len(recs) == 0 {
		return []models.Recommendation{}, nil
	}

	// PostgREST requires identical keys across all objects in a batch insert
	insertData := make([]map[string]interface{}, 0, len(recs))
	for _, rec := range recs {
		data := map[string]interface{}{
			"user_id":              rec.UserID,
			"activity_template_id": rec.ActivityTemplateID,
			"reason":               rec.Reason,
			"priority":             rec.Priority,
			"expires_at":           nil,
		}
		if rec.ExpiresAt != nil {
			data["expires_at"] = rec.ExpiresAt.Format(time.RFC3339)
		}
		insertData = append(insertData, data)
	}

	// Expired pending rows still match the hosted partial index; close them
	// out first so an expired recommendation can never block the same
	// template from being recommended again.
	users := make(map[string]struct{}, 1)
	for _, rec := range recs {
		users[rec.UserID] = struct{}{}
	}
	for userID := range users {
		if err := r.closeExpired(userID); err != nil {
			return nil, err
		}
	}

	// A partial unique index on (user_id, activity_template_id) covers open
	// rows only; ignore-duplicates drops candidates that already have an
	// open recommendation instead of failing the whole batch.
	body, err := r.client.InsertIgnoreDuplicates("user_recommendations", insertData, "user_id,activity_template_id")
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendations: %w", err)
	}

	var created []models.Recommendation
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return created, nil
}

func (r *recommendationRepository) closeExpired(userID string) error {
	query := map[string]interface{}{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"accepted":   "is.null",
		"dismissed":  "eq.false",
		"expires_at": fmt.Sprintf("lte.%s", time.Now().UTC().Format(time.RFC3339)),
	}
	if _, err := r.client.UpdateWhere("user_recommendations", query, map[string]interface{}{"dismissed": true}); err != nil {
		return fmt.Errorf("failed to close expired recommendations: %w", err)
	}
	return nil
}

// MarkAccepted flips an open recommendation to accepted. The filter repeats
// the open predicate so a concurrent accept, dismiss or expiry loses cleanly
// instead of double-accepting.
func (r *recommendationRepository) MarkAccepted(ctx context.Context, id string) (*models.Recommendation, error) {
	return r.closeRecommendation(id, map[string]interface{}{"accepted": true})
}

// MarkDismissed flips an open recommendation to dismissed. Same
// check-and-set shape as MarkAccepted.
func (r *recommendationRepository) MarkDismissed(ctx context.Context, id string) (*models.Recommendation, error) {
	return r.closeRecommendation(id, map[string]interface{}{"dismissed": true})
}

func (r *recommendationRepository) closeRecommendation(id string, data map[string]interface{}) (*models.Recommendation, error) {
	query := map[string]interface{}{
		"id":        fmt.Sprintf("eq.%s", id),
		"accepted":  "is.null",
		"dismissed": "eq.false",
		"or":        fmt.Sprintf("(expires_at.is.null,expires_at.gt.%s)", time.Now().UTC().Format(time.RFC3339)),
	}

	body, err := r.client.UpdateWhere("user_recommendations", query, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update recommendation: %w", err)
	}

	var recs []models.Recommendation
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("recommendation is no longer open")
	}

	return &recs[0], nil
}
