package models

import (
	"fmt"
	"time"
)

// Recommendation priorities. Lower number means more urgent.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Recommendation is a persisted suggestion to schedule an activity from a
// template. Accepted is nil while the recommendation is pending; accept and
// dismiss are both terminal.
type Recommendation struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"user_id"`
	ActivityTemplateID string            `json:"activity_template_id"`
	Reason             string            `json:"reason"`
	Priority           int               `json:"priority"`
	Accepted           *bool             `json:"accepted"`
	Dismissed          bool              `json:"dismissed"`
	ExpiresAt          *time.Time        `json:"expires_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	Template           *ActivityTemplate `json:"activity_templates,omitempty"`
}

// IsOpen reports whether the recommendation is still actionable: pending,
// not dismissed, and not expired as of now.
func (r *Recommendation) IsOpen(now time.Time) bool {
	if r.Accepted != nil || r.Dismissed {
		return false
	}
	return r.ExpiresAt == nil || r.ExpiresAt.After(now)
}

// TriggerKind identifies one of the supported rule trigger conditions.
// The set is closed: the evaluator switches exhaustively over it and a rule
// with an unknown kind is skipped as malformed.
type TriggerKind string

const (
	TriggerHighStress    TriggerKind = "high_stress"
	TriggerLowCompletion TriggerKind = "low_completion"
	TriggerJournalGap    TriggerKind = "journal_gap"
	TriggerLowMood       TriggerKind = "low_mood"
)

// TriggerCondition is the parsed trigger of a recommendation rule. Only the
// fields belonging to Kind are meaningful; Validate enforces that the
// required ones are set and in range.
type TriggerCondition struct {
	Kind TriggerKind `json:"kind"`

	// high_stress: share of entries with stress or anxiety >= MinLevel
	// must exceed MinShare.
	MinLevel int     `json:"min_level,omitempty"`
	MinShare float64 `json:"min_share,omitempty"` // also low_mood

	// low_completion: completion rate below MaxRate with at least one activity.
	MaxRate float64 `json:"max_rate,omitempty"`

	// journal_gap: more than MaxGapDays since the last session (or none ever).
	MaxGapDays int `json:"max_gap_days,omitempty"`

	// low_mood: share of entries with mood < MaxScore must exceed MinShare
	// and the sample must hold more than MinSample entries.
	MaxScore  int `json:"max_score,omitempty"`
	MinSample int `json:"min_sample,omitempty"`
}

// Validate checks the condition is well formed for its kind.
func (t TriggerCondition) Validate() error {
	switch t.Kind {
	case TriggerHighStress:
		if t.MinLevel < 0 || t.MinLevel > 10 {
			return fmt.Errorf("high_stress: min_level %d out of range", t.MinLevel)
		}
		if t.MinShare <= 0 || t.MinShare >= 1 {
			return fmt.Errorf("high_stress: min_share %v out of range", t.MinShare)
		}
	case TriggerLowCompletion:
		if t.MaxRate <= 0 || t.MaxRate > 1 {
			return fmt.Errorf("low_completion: max_rate %v out of range", t.MaxRate)
		}
	case TriggerJournalGap:
		if t.MaxGapDays <= 0 {
			return fmt.Errorf("journal_gap: max_gap_days %d out of range", t.MaxGapDays)
		}
	case TriggerLowMood:
		if t.MaxScore < -5 || t.MaxScore > 5 {
			return fmt.Errorf("low_mood: max_score %d out of range", t.MaxScore)
		}
		if t.MinShare <= 0 || t.MinShare >= 1 {
			return fmt.Errorf("low_mood: min_share %v out of range", t.MinShare)
		}
	default:
		return fmt.Errorf("unknown trigger kind %q", string(t.Kind))
	}
	return nil
}

// RecommendationRule ties a trigger condition to the activity templates it
// suggests and the priority tier of the resulting recommendation.
type RecommendationRule struct {
	ID                  string           `json:"id"`
	Trigger             TriggerCondition `json:"trigger_condition"`
	ActivityTemplateIDs []string         `json:"activity_template_ids"`
	Reason              string           `json:"reason"`
	Priority            int              `json:"priority"`
	Enabled             bool             `json:"enabled"`
	CreatedAt           time.Time        `json:"created_at"`
}

// Validate checks the rule as a whole; invalid rules are skipped by the
// evaluator, they never abort evaluation of the rest.
func (r *RecommendationRule) Validate() error {
	if err := r.Trigger.Validate(); err != nil {
		return err
	}
	if len(r.ActivityTemplateIDs) == 0 {
		return fmt.Errorf("rule %s has no activity templates", r.ID)
	}
	if r.Priority < PriorityHigh || r.Priority > PriorityLow {
		return fmt.Errorf("rule %s has priority %d outside 1..3", r.ID, r.Priority)
	}
	return nil
}

// Candidate is an evaluator output: a recommendation that should exist,
// before deduplication against the user's open set.
type Candidate struct {
	ActivityTemplateID string `json:"activity_template_id"`
	Reason             string `json:"reason"`
	Priority           int    `json:"priority"`
}
