package insights

import (
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// consistencyThreshold is the inclusive share of elapsed days that must be
// tracked before the consistency pattern fires.
const consistencyThreshold = 0.70

// DetectPatterns runs the fixed battery of behavioral heuristics against the
// aggregated window and returns the findings that fired, in battery order.
// A heuristic without enough qualifying data is skipped, not an error; an
// empty result means the caller should render its "not enough data" state.
func DetectPatterns(agg *Aggregates, entries []models.TrackerEntry, now time.Time) []models.Pattern {
	patterns := make([]models.Pattern, 0, 4)
	order := 0

	emit := func(title, description string) {
		order++
		patterns = append(patterns, models.Pattern{
			Title:       title,
			Description: description,
			Weight:      float64(order),
		})
	}

	if p, ok := bestMoodDay(agg); ok {
		emit(p.title, p.description)
	}
	if p, ok := activityLift(agg, entries); ok {
		emit(p.title, p.description)
	}
	if p, ok := mostActiveSlot(agg); ok {
		emit(p.title, p.description)
	}
	if p, ok := consistency(agg, now); ok {
		emit(p.title, p.description)
	}

	return patterns
}

type finding struct {
	title       string
	description string
}

// bestMoodDay picks the weekday bucket with the highest average mood.
// Ties go to the earlier day in canonical Mon..Sun order.
func bestMoodDay(agg *Aggregates) (finding, bool) {
	var (
		best    time.Weekday
		bestAvg float64
		found   bool
	)
	for _, day := range weekOrder {
		avg, ok := agg.WeekdayMood(day)
		if !ok {
			continue
		}
		if !found || avg > bestAvg {
			best = day
			bestAvg = avg
			found = true
		}
	}
	if !found {
		return finding{}, false
	}
	return finding{
		title:       fmt.Sprintf("Your best day is %s", best.String()),
		description: fmt.Sprintf("Average mood score: %.1f", bestAvg),
	}, true
}

// activityLift splits tracked dates into days with and without a completed
// activity and reports the mood delta when activity days score higher. Both
// groups need at least one scored entry.
func activityLift(agg *Aggregates, entries []models.TrackerEntry) (finding, bool) {
	var withAct, withoutAct DimensionStat
	for i := range entries {
		e := &entries[i]
		if e.MoodScore == nil {
			continue
		}
		if agg.CompletedActivityDates[e.EntryDate] {
			withAct.add(e.MoodScore)
		} else {
			withoutAct.add(e.MoodScore)
		}
	}

	avgWith, okWith := withAct.Avg()
	avgWithout, okWithout := withoutAct.Avg()
	if !okWith || !okWithout || avgWith <= avgWithout {
		return finding{}, false
	}
	return finding{
		title:       "Activities boost your mood",
		description: fmt.Sprintf("%.1f points higher on days with completed activities", avgWith-avgWithout),
	}, true
}

// mostActiveSlot reports the time-of-day slot with the most scheduled
// activities. Ties go to the earlier slot in day order.
func mostActiveSlot(agg *Aggregates) (finding, bool) {
	var (
		best  models.TimeSlot
		max   int
		found bool
	)
	for _, slot := range models.AllTimeSlots {
		count := agg.SlotCounts[slot]
		if count == 0 {
			continue
		}
		if !found || count > max {
			best = slot
			max = count
			found = true
		}
	}
	if !found {
		return finding{}, false
	}
	return finding{
		title:       fmt.Sprintf("You're most active in the %s", best.Label()),
		description: fmt.Sprintf("%d activities scheduled", max),
	}, true
}

// consistency fires when the share of elapsed days with at least one entry
// reaches the threshold. Elapsed days are counted from the first entry
// through today, inclusive.
func consistency(agg *Aggregates, now time.Time) (finding, bool) {
	if len(agg.TrackedDates) == 0 {
		return finding{}, false
	}
	elapsed := models.DateOf(now).DaysSince(agg.FirstEntryDate) + 1
	if elapsed <= 0 {
		return finding{}, false
	}
	share := float64(len(agg.TrackedDates)) / float64(elapsed)
	if share < consistencyThreshold {
		return finding{}, false
	}
	return finding{
		title:       "Great tracking consistency",
		description: fmt.Sprintf("%.0f%% of days tracked", share*100),
	}, true
}
