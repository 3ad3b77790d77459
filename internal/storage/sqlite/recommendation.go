package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// --- Recommendations ---

func (s *Store) GetRecommendationByID(ctx context.Context, id string) (*models.Recommendation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, activity_template_id, reason, priority, accepted,
			dismissed, expires_at, created_at
		 FROM user_recommendations WHERE id = ?`, id)

	rec, err := scanRecommendation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recommendation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}

	if err := s.attachTemplate(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) ListOpenRecommendations(ctx context.Context, userID string, now time.Time) ([]models.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, activity_template_id, reason, priority, accepted,
			dismissed, expires_at, created_at
		 FROM user_recommendations
		 WHERE user_id = ? AND accepted IS NULL AND dismissed = 0
			AND (expires_at IS NULL OR expires_at > ?)
		 ORDER BY priority ASC, created_at DESC`,
		userID, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list open recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]models.Recommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recs {
		if err := s.attachTemplate(ctx, &recs[i]); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// CreateRecommendations inserts the batch, dropping rows that collide with
// an existing open recommendation for the same user and template. The
// partial unique index makes the dedup atomic; only rows actually inserted
// are returned.
func (s *Store) CreateRecommendations(ctx context.Context, recs []models.Recommendation) ([]models.Recommendation, error) {
	// Expired pending rows still match the partial index even though they
	// are no longer open. Close them out first so an expired recommendation
	// can never block the same template from being recommended again.
	users := make(map[string]struct{}, 1)
	for _, rec := range recs {
		users[rec.UserID] = struct{}{}
	}
	for userID := range users {
		if err := s.closeExpiredRecommendations(ctx, userID); err != nil {
			return nil, err
		}
	}

	created := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		rec.ID = newID()
		rec.CreatedAt = s.now()

		var expiresAt interface{}
		if rec.ExpiresAt != nil {
			expiresAt = rec.ExpiresAt.UTC()
		}

		res, err := s.db.ExecContext(ctx,
			`INSERT INTO user_recommendations
				(id, user_id, activity_template_id, reason, priority, dismissed, expires_at, created_at)
			 VALUES (?,?,?,?,?,0,?,?)
			 ON CONFLICT (user_id, activity_template_id)
				WHERE accepted IS NULL AND dismissed = 0
				DO NOTHING`,
			rec.ID, rec.UserID, rec.ActivityTemplateID, rec.Reason, rec.Priority,
			expiresAt, rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create recommendation: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected > 0 {
			created = append(created, rec)
		}
	}
	return created, nil
}

func (s *Store) closeExpiredRecommendations(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE user_recommendations SET dismissed = 1
		 WHERE user_id = ? AND accepted IS NULL AND dismissed = 0
			AND expires_at IS NOT NULL AND expires_at <= ?`,
		userID, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to close expired recommendations: %w", err)
	}
	return nil
}

// MarkAccepted flips an open recommendation to accepted. The WHERE clause
// repeats the open predicate so a concurrent accept, dismiss or expiry loses
// cleanly instead of double-accepting.
func (s *Store) MarkAccepted(ctx context.Context, id string) (*models.Recommendation, error) {
	return s.closeRecommendation(ctx, id, "accepted = 1")
}

// MarkDismissed flips an open recommendation to dismissed. Same
// check-and-set shape as MarkAccepted.
func (s *Store) MarkDismissed(ctx context.Context, id string) (*models.Recommendation, error) {
	return s.closeRecommendation(ctx, id, "dismissed = 1")
}

func (s *Store) closeRecommendation(ctx context.Context, id, set string) (*models.Recommendation, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_recommendations SET `+set+`
		 WHERE id = ? AND accepted IS NULL AND dismissed = 0
			AND (expires_at IS NULL OR expires_at > ?)`,
		id, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update recommendation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("recommendation is no longer open")
	}
	return s.GetRecommendationByID(ctx, id)
}

func (s *Store) attachTemplate(ctx context.Context, rec *models.Recommendation) error {
	t, err := s.GetTemplateByID(ctx, rec.ActivityTemplateID)
	if err != nil {
		return err
	}
	rec.Template = t
	return nil
}

func scanRecommendation(row rowScanner) (*models.Recommendation, error) {
	var (
		rec       models.Recommendation
		accepted  sql.NullInt64
		dismissed int
		expiresAt sql.NullTime
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.ActivityTemplateID, &rec.Reason,
		&rec.Priority, &accepted, &dismissed, &expiresAt, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if accepted.Valid {
		v := accepted.Int64 != 0
		rec.Accepted = &v
	}
	rec.Dismissed = dismissed != 0
	if expiresAt.Valid {
		t := expiresAt.Time
		rec.ExpiresAt = &t
	}
	return &rec, nil
}

// --- Recommendation rules ---

func (s *Store) ListEnabledRules(ctx context.Context) ([]models.RecommendationRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trigger_condition, activity_template_ids, reason, priority, enabled, created_at
		 FROM recommendation_rules WHERE enabled = 1 ORDER BY priority ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation rules: %w", err)
	}
	defer rows.Close()

	rules := make([]models.RecommendationRule, 0)
	for rows.Next() {
		var (
			rule        models.RecommendationRule
			trigger     string
			templateIDs string
			enabled     int
		)
		err := rows.Scan(&rule.ID, &trigger, &templateIDs, &rule.Reason,
			&rule.Priority, &enabled, &rule.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation rule: %w", err)
		}

		if err := json.Unmarshal([]byte(trigger), &rule.Trigger); err != nil {
			return nil, fmt.Errorf("bad trigger_condition for rule %s: %w", rule.ID, err)
		}
		if err := json.Unmarshal([]byte(templateIDs), &rule.ActivityTemplateIDs); err != nil {
			return nil, fmt.Errorf("bad activity_template_ids for rule %s: %w", rule.ID, err)
		}
		rule.Enabled = enabled != 0
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
