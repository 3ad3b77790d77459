package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/PsySom/ready-set-prompt/internal/insights"
	"github.com/PsySom/ready-set-prompt/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS tracker_entries (
	id                   TEXT PRIMARY KEY,
	user_id              TEXT NOT NULL,
	entry_date           TEXT NOT NULL,
	entry_time           TEXT,
	mood_score           INTEGER,
	stress_level         INTEGER,
	anxiety_level        INTEGER,
	energy_level         INTEGER,
	process_satisfaction INTEGER,
	result_satisfaction  INTEGER,
	created_at           TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tracker_entries_user_date
	ON tracker_entries(user_id, entry_date);

CREATE TABLE IF NOT EXISTS tracker_emotions (
	id        TEXT PRIMARY KEY,
	entry_id  TEXT NOT NULL REFERENCES tracker_entries(id) ON DELETE CASCADE,
	label     TEXT NOT NULL,
	intensity INTEGER NOT NULL,
	category  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_templates (
	id                       TEXT PRIMARY KEY,
	name                     TEXT NOT NULL,
	emoji                    TEXT NOT NULL,
	description              TEXT,
	category                 TEXT NOT NULL,
	impact_type              TEXT NOT NULL,
	default_duration_minutes INTEGER,
	is_system                INTEGER NOT NULL DEFAULT 0,
	created_at               TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL,
	title             TEXT NOT NULL,
	date              TEXT NOT NULL,
	start_time        TEXT,
	duration_minutes  INTEGER,
	category          TEXT NOT NULL,
	impact_type       TEXT NOT NULL,
	status            TEXT NOT NULL,
	template_id       TEXT REFERENCES activity_templates(id),
	recommendation_id TEXT,
	created_at        TIMESTAMP NOT NULL,
	updated_at        TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_user_date
	ON activities(user_id, date);

CREATE TABLE IF NOT EXISTS journal_sessions (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	session_type TEXT NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	ended_at     TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_journal_sessions_user
	ON journal_sessions(user_id, started_at);

CREATE TABLE IF NOT EXISTS journal_messages (
	id           TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL REFERENCES journal_sessions(id) ON DELETE CASCADE,
	message_type TEXT NOT NULL,
	content      TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS user_recommendations (
	id                   TEXT PRIMARY KEY,
	user_id              TEXT NOT NULL,
	activity_template_id TEXT NOT NULL REFERENCES activity_templates(id),
	reason               TEXT NOT NULL,
	priority             INTEGER NOT NULL,
	accepted             INTEGER,
	dismissed            INTEGER NOT NULL DEFAULT 0,
	expires_at           TIMESTAMP,
	created_at           TIMESTAMP NOT NULL
);

-- At most one open recommendation per user and template. Accepted, dismissed
-- and expired rows fall outside the index, so history is kept.
CREATE UNIQUE INDEX IF NOT EXISTS idx_open_recommendation
	ON user_recommendations(user_id, activity_template_id)
	WHERE accepted IS NULL AND dismissed = 0;

CREATE TABLE IF NOT EXISTS recommendation_rules (
	id                    TEXT PRIMARY KEY,
	trigger_condition     TEXT NOT NULL,
	activity_template_ids TEXT NOT NULL,
	reason                TEXT NOT NULL,
	priority              INTEGER NOT NULL,
	enabled               INTEGER NOT NULL DEFAULT 1,
	created_at            TIMESTAMP NOT NULL
);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SystemTemplates are the built-in activity templates the default rule set
// points at. IDs are stable so reseeding is a no-op.
var SystemTemplates = []models.ActivityTemplate{
	{
		ID:                     "tpl-system-breathing",
		Name:                   "Breathing exercise",
		Emoji:                  "🧘",
		Category:               models.CategoryPractice,
		ImpactType:             models.ImpactRestorative,
		DefaultDurationMinutes: intp(10),
		IsSystem:               true,
	},
	{
		ID:         "tpl-system-light-day",
		Name:       "Plan a lighter day",
		Emoji:      "🪶",
		Category:   models.CategoryLeisure,
		ImpactType: models.ImpactRestorative,
		IsSystem:   true,
	},
	{
		ID:                     "tpl-system-journaling",
		Name:                   "Journaling session",
		Emoji:                  "📓",
		Category:               models.CategoryReflection,
		ImpactType:             models.ImpactNeutral,
		DefaultDurationMinutes: intp(15),
		IsSystem:               true,
	},
	{
		ID:                     "tpl-system-self-check",
		Name:                   "Self-assessment check-in",
		Emoji:                  "📋",
		Category:               models.CategoryHealth,
		ImpactType:             models.ImpactNeutral,
		DefaultDurationMinutes: intp(10),
		IsSystem:               true,
	},
}

// DefaultTemplateIDs maps the built-in rules onto the system templates.
func DefaultTemplateIDs() insights.DefaultRuleTemplates {
	return insights.DefaultRuleTemplates{
		StressRelief: "tpl-system-breathing",
		ReduceLoad:   "tpl-system-light-day",
		Journaling:   "tpl-system-journaling",
		Assessment:   "tpl-system-self-check",
	}
}

// Seed inserts the system templates and the default rule set. Existing rows
// are left untouched, so edits made through the API survive restarts.
func (s *Store) Seed() error {
	for _, t := range SystemTemplates {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO activity_templates
				(id, name, emoji, description, category, impact_type, default_duration_minutes, is_system, created_at)
			 VALUES (?,?,?,?,?,?,?,?,?)`,
			t.ID, t.Name, t.Emoji, t.Description, t.Category, t.ImpactType,
			t.DefaultDurationMinutes, boolToInt(t.IsSystem), s.now(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed template %s: %w", t.ID, err)
		}
	}

	for _, rule := range insights.DefaultRules(DefaultTemplateIDs()) {
		trigger, err := json.Marshal(rule.Trigger)
		if err != nil {
			return fmt.Errorf("failed to marshal trigger for %s: %w", rule.ID, err)
		}
		templateIDs, err := json.Marshal(rule.ActivityTemplateIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal template ids for %s: %w", rule.ID, err)
		}
		_, err = s.db.Exec(
			`INSERT OR IGNORE INTO recommendation_rules
				(id, trigger_condition, activity_template_ids, reason, priority, enabled, created_at)
			 VALUES (?,?,?,?,?,?,?)`,
			rule.ID, string(trigger), string(templateIDs), rule.Reason,
			rule.Priority, boolToInt(rule.Enabled), s.now(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed rule %s: %w", rule.ID, err)
		}
	}

	return nil
}

func intp(v int) *int { return &v }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
