package models

import "time"

// OverviewStats is the headline summary for the insights view.
// AvgMood is omitted (HasMood=false) rather than reported as zero when no
// entry in the window carries a mood score.
type OverviewStats struct {
	AvgMood        float64 `json:"avg_mood"`
	HasMood        bool    `json:"has_mood"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	JournalCount   int     `json:"journal_count"`
}

// Pattern is one behavioral finding emitted by the pattern detector, in
// detector-defined order. Weight mirrors the emission order and lets callers
// re-sort after merging pattern sources.
type Pattern struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// MoodTrendPoint is one day on the mood trend chart: the average of the
// day's scored entries.
type MoodTrendPoint struct {
	Date    Date    `json:"date"`
	AvgMood float64 `json:"avg_mood"`
	Entries int     `json:"entries"`
}

// InsightsResponse is the API payload for the insights view: headline stats,
// detected patterns, and the user's open recommendations grouped by tier.
type InsightsResponse struct {
	Overview        OverviewStats    `json:"overview"`
	Patterns        []Pattern        `json:"patterns"`
	MoodTrend       []MoodTrendPoint `json:"mood_trend"`
	Recommendations []Recommendation `json:"recommendations"`
	ComputedAt      time.Time        `json:"computed_at"`
}

// InsightsExport is the raw-record JSON dump offered from the insights view.
type InsightsExport struct {
	Period          string           `json:"period"`
	ExportedAt      time.Time        `json:"exported_at"`
	TrackerEntries  []TrackerEntry   `json:"tracker_entries"`
	Activities      []Activity       `json:"activities"`
	JournalSessions []JournalSession `json:"journal_sessions"`
}
