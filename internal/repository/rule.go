package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/models"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
)

type ruleRepository struct {
	client *supabase.Client
}

// NewRuleRepository creates a new recommendation rule repository
func NewRuleRepository(client *supabase.Client) RuleRepository {
	return &ruleRepository{client: client}
}

func (r *ruleRepository) ListEnabled(ctx context.Context) ([]models.RecommendationRule, error) {
	query := map[string]interface{}{
		"enabled": "eq.true",
		"order":   "priority.asc",
	}

	body, err := r.client.Query("recommendation_rules", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation rules: %w", err)
	}

	var rules []models.RecommendationRule
	if err := json.Unmarshal(body, &rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return rules, nil
}
