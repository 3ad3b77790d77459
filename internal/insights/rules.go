package insights

import (
	"time"

	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/models"
)

// Evaluate runs every enabled rule against the aggregated state and returns
// the candidates of rules whose trigger fired, one candidate per template.
// Rules are independent: any subset may fire, and a malformed rule is logged
// and skipped without aborting the rest. The result is deterministic for
// identical input.
func Evaluate(
	rules []models.RecommendationRule,
	agg *Aggregates,
	entries []models.TrackerEntry,
	sessions []models.JournalSession,
	now time.Time,
	log logger.Logger,
) []models.Candidate {
	candidates := make([]models.Candidate, 0)

	for i := range rules {
		rule := &rules[i]
		if !rule.Enabled {
			continue
		}
		if err := rule.Validate(); err != nil {
			log.Warn("skipping malformed recommendation rule",
				logger.String("rule_id", rule.ID),
				logger.Err(err),
			)
			continue
		}

		if !triggerFires(rule.Trigger, agg, entries, sessions, now) {
			continue
		}

		for _, templateID := range rule.ActivityTemplateIDs {
			candidates = append(candidates, models.Candidate{
				ActivityTemplateID: templateID,
				Reason:             rule.Reason,
				Priority:           rule.Priority,
			})
		}
	}

	return candidates
}

// triggerFires evaluates one trigger condition. The switch is exhaustive
// over the closed TriggerKind set; Validate has already rejected unknown
// kinds.
func triggerFires(
	t models.TriggerCondition,
	agg *Aggregates,
	entries []models.TrackerEntry,
	sessions []models.JournalSession,
	now time.Time,
) bool {
	switch t.Kind {
	case models.TriggerHighStress:
		if len(entries) == 0 {
			return false
		}
		high := 0
		for i := range entries {
			e := &entries[i]
			if (e.StressLevel != nil && *e.StressLevel >= t.MinLevel) ||
				(e.AnxietyLevel != nil && *e.AnxietyLevel >= t.MinLevel) {
				high++
			}
		}
		return float64(high) > float64(len(entries))*t.MinShare

	case models.TriggerLowCompletion:
		return agg.TotalActivities > 0 && agg.CompletionRate() < t.MaxRate

	case models.TriggerJournalGap:
		// A user with no history at all gets the nudge: journaling absence
		// removes a diagnostic signal, so it is treated as urgent rather
		// than suppressed for new accounts.
		last, ok := latestSessionStart(sessions)
		if !ok {
			return true
		}
		gapDays := int(now.Sub(last).Hours() / 24)
		return gapDays > t.MaxGapDays

	case models.TriggerLowMood:
		if len(entries) <= t.MinSample {
			return false
		}
		low := 0
		for i := range entries {
			e := &entries[i]
			if e.MoodScore != nil && *e.MoodScore < t.MaxScore {
				low++
			}
		}
		return float64(low) > float64(len(entries))*t.MinShare
	}
	return false
}

func latestSessionStart(sessions []models.JournalSession) (time.Time, bool) {
	var latest time.Time
	found := false
	for i := range sessions {
		if !found || sessions[i].StartedAt.After(latest) {
			latest = sessions[i].StartedAt
			found = true
		}
	}
	return latest, found
}

// DefaultRuleTemplates names the activity templates the built-in rule set
// points at.
type DefaultRuleTemplates struct {
	StressRelief string
	ReduceLoad   string
	Journaling   string
	Assessment   string
}

// DefaultRules is the built-in rule battery, used to seed the rules store.
// Thresholds: high stress/anxiety (level 7+, over 30% of entries) at high
// priority; completion rate under half at medium; journaling gap over a week
// at high; persistent low mood (under -2, over 40% of a 6+ entry sample) at
// medium.
func DefaultRules(t DefaultRuleTemplates) []models.RecommendationRule {
	return []models.RecommendationRule{
		{
			ID: "rule-high-stress",
			Trigger: models.TriggerCondition{
				Kind:     models.TriggerHighStress,
				MinLevel: 7,
				MinShare: 0.3,
			},
			ActivityTemplateIDs: []string{t.StressRelief},
			Reason:              "Your stress levels have been elevated",
			Priority:            models.PriorityHigh,
			Enabled:             true,
		},
		{
			ID: "rule-low-completion",
			Trigger: models.TriggerCondition{
				Kind:    models.TriggerLowCompletion,
				MaxRate: 0.5,
			},
			ActivityTemplateIDs: []string{t.ReduceLoad},
			Reason:              "You might be planning too much",
			Priority:            models.PriorityMedium,
			Enabled:             true,
		},
		{
			ID: "rule-journal-gap",
			Trigger: models.TriggerCondition{
				Kind:       models.TriggerJournalGap,
				MaxGapDays: 7,
			},
			ActivityTemplateIDs: []string{t.Journaling},
			Reason:              "It's been a while since your last journal entry",
			Priority:            models.PriorityHigh,
			Enabled:             true,
		},
		{
			ID: "rule-low-mood",
			Trigger: models.TriggerCondition{
				Kind:      models.TriggerLowMood,
				MaxScore:  -2,
				MinShare:  0.4,
				MinSample: 5,
			},
			ActivityTemplateIDs: []string{t.Assessment},
			Reason:              "Your mood has been low recently",
			Priority:            models.PriorityMedium,
			Enabled:             true,
		},
	}
}
