// Package insights implements the behavioral analytics engine: temporal
// aggregation of tracker entries and activities, streak computation, pattern
// detection, and recommendation rule evaluation. Everything in this package
// is pure: it operates on an in-memory snapshot of one user's records, takes
// "now" as an explicit parameter, and never touches storage.
package insights

import (
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// weekOrder is the canonical week used for day-of-week buckets and
// tie-breaking (Monday first).
var weekOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DimensionStat accumulates one mood dimension within a bucket. A nil score
// contributes to neither sum nor count, so empty buckets stay distinguishable
// from buckets full of zeros.
type DimensionStat struct {
	Sum   float64
	Count int
}

func (d *DimensionStat) add(v *int) {
	if v == nil {
		return
	}
	d.Sum += float64(*v)
	d.Count++
}

// Avg returns the bucket average and whether the bucket holds any data.
// Callers must treat ok=false as "not applicable", never as zero.
func (d DimensionStat) Avg() (float64, bool) {
	if d.Count == 0 {
		return 0, false
	}
	return d.Sum / float64(d.Count), true
}

// WeekdayStats holds per-dimension accumulators for one day of the week.
type WeekdayStats struct {
	Mood                DimensionStat
	Stress              DimensionStat
	Anxiety             DimensionStat
	Energy              DimensionStat
	ProcessSatisfaction DimensionStat
	ResultSatisfaction  DimensionStat
}

// Aggregates is the derived state both the pattern detector and the rule
// evaluator consume. It is a plain value with no behavior beyond accessors.
type Aggregates struct {
	// Weekday buckets tracker entries by the entry's local date.
	Weekday map[time.Weekday]*WeekdayStats

	// Mood accumulates every scored entry regardless of day.
	Mood DimensionStat

	// SlotCounts buckets activities by time-of-day slot. Activities without
	// a start time are absent here but still counted in TotalActivities.
	SlotCounts map[models.TimeSlot]int

	TotalActivities     int
	CompletedActivities int

	// TrackedDates is the set of distinct calendar dates with at least one
	// tracker entry; FirstEntryDate is the earliest of them.
	TrackedDates   map[models.Date]bool
	FirstEntryDate models.Date

	// CompletedActivityDates is the set of dates with at least one
	// completed activity, used by the activity-lift heuristic.
	CompletedActivityDates map[models.Date]bool

	EntryCount int
}

// CompletionRate returns completed/total activities, 0 when there are none.
func (a *Aggregates) CompletionRate() float64 {
	if a.TotalActivities == 0 {
		return 0
	}
	return float64(a.CompletedActivities) / float64(a.TotalActivities)
}

// WeekdayMood returns the average mood for one weekday bucket.
func (a *Aggregates) WeekdayMood(day time.Weekday) (float64, bool) {
	b, ok := a.Weekday[day]
	if !ok {
		return 0, false
	}
	return b.Mood.Avg()
}

// Aggregate buckets a window of tracker entries and activities into the
// derived state downstream analysis runs on. Pure function, no side effects.
func Aggregate(entries []models.TrackerEntry, activities []models.Activity) *Aggregates {
	agg := &Aggregates{
		Weekday:                make(map[time.Weekday]*WeekdayStats),
		SlotCounts:             make(map[models.TimeSlot]int),
		TrackedDates:           make(map[models.Date]bool),
		CompletedActivityDates: make(map[models.Date]bool),
	}

	for i := range entries {
		e := &entries[i]
		agg.EntryCount++

		day := e.EntryDate.Weekday()
		b, ok := agg.Weekday[day]
		if !ok {
			b = &WeekdayStats{}
			agg.Weekday[day] = b
		}
		b.Mood.add(e.MoodScore)
		b.Stress.add(e.StressLevel)
		b.Anxiety.add(e.AnxietyLevel)
		b.Energy.add(e.EnergyLevel)
		b.ProcessSatisfaction.add(e.ProcessSatisfaction)
		b.ResultSatisfaction.add(e.ResultSatisfaction)

		agg.Mood.add(e.MoodScore)

		agg.TrackedDates[e.EntryDate] = true
		if agg.FirstEntryDate.IsZero() || e.EntryDate.Before(agg.FirstEntryDate) {
			agg.FirstEntryDate = e.EntryDate
		}
	}

	for i := range activities {
		act := &activities[i]
		agg.TotalActivities++
		if act.Status == models.StatusCompleted {
			agg.CompletedActivities++
			agg.CompletedActivityDates[act.Date] = true
		}
		if act.StartTime != nil {
			agg.SlotCounts[models.SlotForHour(act.StartTime.Hour)]++
		}
	}

	return agg
}
