package insights

import (
	"math"
	"sort"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/models"
)

// Input is the bounded window of one user's records the engine analyzes.
// The caller (service layer) fetches it; the engine never reads storage.
type Input struct {
	Entries    []models.TrackerEntry
	Activities []models.Activity
	Sessions   []models.JournalSession
	Rules      []models.RecommendationRule
	Now        time.Time
}

// Output is everything the engine derives from one input snapshot.
// Candidates still need reconciling against the user's open recommendations
// before anything is persisted.
type Output struct {
	Aggregates *Aggregates
	Overview   models.OverviewStats
	Patterns   []models.Pattern
	MoodTrend  []models.MoodTrendPoint
	Candidates []models.Candidate
}

// Engine ties the pure analysis stages together.
type Engine struct {
	log logger.Logger
}

// New creates an engine. The logger is only used to warn about malformed
// rules; analysis itself produces no side effects.
func New(log logger.Logger) *Engine {
	return &Engine{log: log}
}

// Analyze runs aggregation, pattern detection, and rule evaluation over the
// snapshot. Safe to call concurrently for different users; re-running on
// identical input yields an identical result.
func (e *Engine) Analyze(in Input) Output {
	agg := Aggregate(in.Entries, in.Activities)
	current, longest := Streaks(agg.TrackedDates, in.Now)

	avgMood, hasMood := agg.Mood.Avg()
	overview := models.OverviewStats{
		AvgMood:        roundTo(avgMood, 1),
		HasMood:        hasMood,
		CompletionRate: agg.CompletionRate(),
		CurrentStreak:  current,
		LongestStreak:  longest,
		JournalCount:   len(in.Sessions),
	}

	return Output{
		Aggregates: agg,
		Overview:   overview,
		Patterns:   DetectPatterns(agg, in.Entries, in.Now),
		MoodTrend:  moodTrend(in.Entries),
		Candidates: Evaluate(in.Rules, agg, in.Entries, in.Sessions, in.Now, e.log),
	}
}

// moodTrend averages each day's scored entries into one chart point,
// ordered by date ascending.
func moodTrend(entries []models.TrackerEntry) []models.MoodTrendPoint {
	byDate := make(map[models.Date]*DimensionStat)
	for i := range entries {
		e := &entries[i]
		if e.MoodScore == nil {
			continue
		}
		stat, ok := byDate[e.EntryDate]
		if !ok {
			stat = &DimensionStat{}
			byDate[e.EntryDate] = stat
		}
		stat.add(e.MoodScore)
	}

	points := make([]models.MoodTrendPoint, 0, len(byDate))
	for date, stat := range byDate {
		avg, _ := stat.Avg()
		points = append(points, models.MoodTrendPoint{
			Date:    date,
			AvgMood: roundTo(avg, 1),
			Entries: stat.Count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
