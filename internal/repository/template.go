package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
)

type templateRepository struct {
	client *supabase.Client
}

// NewTemplateRepository creates a new activity template repository
func NewTemplateRepository(client *supabase.Client) TemplateRepository {
	return &templateRepository{client: client}
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.ActivityTemplate, error) {
	query := map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", id),
	}

	body, err := r.client.Query("activity_templates", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity template: %w", err)
	}

	var templates []models.ActivityTemplate
	if err := json.Unmarshal(body, &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("activity template not found")
	}

	return &templates[0], nil
}

func (r *templateRepository) List(ctx context.Context) ([]models.ActivityTemplate, error) {
	query := map[string]interface{}{
		"order": "name.asc",
	}

	body, err := r.client.Query("activity_templates", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity templates: %w", err)
	}

	var templates []models.ActivityTemplate
	if err := json.Unmarshal(body, &templates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return templates, nil
}
