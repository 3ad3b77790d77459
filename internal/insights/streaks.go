package insights

import (
	"sort"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// Streaks computes the current and longest consecutive-day streaks over the
// set of distinct dates with at least one tracker entry. A day with multiple
// entries counts once; the caller passes "now" so results are re-derivable
// from stored data alone.
//
// The current streak is anchored at today, or at yesterday when today has no
// entry yet: a gap of exactly one day does not break an in-progress streak
// at evaluation time, though it does not lengthen it either. If neither
// today nor yesterday qualifies, the current streak is 0.
func Streaks(dates map[models.Date]bool, now time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	today := models.DateOf(now)
	anchor := today
	if !dates[anchor] {
		anchor = today.AddDays(-1)
	}
	if dates[anchor] {
		for d := anchor; dates[d]; d = d.AddDays(-1) {
			current++
		}
	}

	sorted := make([]models.Date, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].DaysSince(sorted[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return current, longest
}
