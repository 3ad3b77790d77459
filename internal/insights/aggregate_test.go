package insights

import (
	"testing"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

func intPtr(v int) *int { return &v }

func timeAt(hour, minute int) *models.TimeOfDay {
	return &models.TimeOfDay{Hour: hour, Minute: minute}
}

func TestAggregate_NilDimensionsExcluded(t *testing.T) {
	monday := models.NewDate(2024, time.June, 10) // a Monday
	entries := []models.TrackerEntry{
		{EntryDate: monday, MoodScore: intPtr(3), StressLevel: intPtr(4)},
		{EntryDate: monday, MoodScore: nil, StressLevel: intPtr(8)},
		{EntryDate: monday, MoodScore: intPtr(-1)},
	}

	agg := Aggregate(entries, nil)

	mood, ok := agg.WeekdayMood(time.Monday)
	if !ok {
		t.Fatal("expected Monday mood bucket to have data")
	}
	// Only the two scored entries contribute: (3 + -1) / 2.
	if mood != 1.0 {
		t.Errorf("Monday avg mood = %v, want 1.0", mood)
	}

	stress := agg.Weekday[time.Monday].Stress
	if stress.Count != 2 {
		t.Errorf("stress count = %d, want 2", stress.Count)
	}

	if _, ok := agg.WeekdayMood(time.Tuesday); ok {
		t.Error("expected empty Tuesday bucket to report no data")
	}
}

func TestAggregate_CompletionRate(t *testing.T) {
	d := models.NewDate(2024, time.June, 10)

	tests := []struct {
		name       string
		activities []models.Activity
		want       float64
	}{
		{
			name:       "empty list is zero, not NaN",
			activities: nil,
			want:       0,
		},
		{
			name: "one of three completed",
			activities: []models.Activity{
				{Date: d, Status: models.StatusCompleted},
				{Date: d, Status: models.StatusPlanned},
				{Date: d.AddDays(-1), Status: models.StatusPlanned},
			},
			want: 1.0 / 3.0,
		},
		{
			name: "all completed",
			activities: []models.Activity{
				{Date: d, Status: models.StatusCompleted},
				{Date: d, Status: models.StatusCompleted},
			},
			want: 1,
		},
		{
			name: "cancelled counts toward total",
			activities: []models.Activity{
				{Date: d, Status: models.StatusCompleted},
				{Date: d, Status: models.StatusCancelled},
			},
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(nil, tt.activities)
			got := agg.CompletionRate()
			if got != tt.want {
				t.Errorf("CompletionRate() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("CompletionRate() = %v outside [0,1]", got)
			}
		})
	}
}

func TestSlotForHour_Boundaries(t *testing.T) {
	tests := []struct {
		hour int
		want models.TimeSlot
	}{
		{0, models.SlotNight},
		{4, models.SlotNight},
		{5, models.SlotMorning},
		{11, models.SlotMorning},
		{12, models.SlotAfternoon},
		{17, models.SlotAfternoon},
		{18, models.SlotEvening},
		{20, models.SlotEvening},
		{21, models.SlotNight},
		{23, models.SlotNight},
	}

	for _, tt := range tests {
		if got := models.SlotForHour(tt.hour); got != tt.want {
			t.Errorf("SlotForHour(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestAggregate_TimeSlots(t *testing.T) {
	d := models.NewDate(2024, time.June, 10)
	activities := []models.Activity{
		{Date: d, StartTime: timeAt(7, 0), Status: models.StatusPlanned},
		{Date: d, StartTime: timeAt(9, 30), Status: models.StatusCompleted},
		{Date: d, StartTime: timeAt(14, 0), Status: models.StatusPlanned},
		{Date: d, StartTime: timeAt(22, 0), Status: models.StatusPlanned},
		// Anytime activity: excluded from slots, counted in totals.
		{Date: d, StartTime: nil, Status: models.StatusPlanned},
	}

	agg := Aggregate(nil, activities)

	if agg.TotalActivities != 5 {
		t.Errorf("TotalActivities = %d, want 5", agg.TotalActivities)
	}
	if got := agg.SlotCounts[models.SlotMorning]; got != 2 {
		t.Errorf("morning count = %d, want 2", got)
	}
	if got := agg.SlotCounts[models.SlotAfternoon]; got != 1 {
		t.Errorf("afternoon count = %d, want 1", got)
	}
	if got := agg.SlotCounts[models.SlotNight]; got != 1 {
		t.Errorf("night count = %d, want 1", got)
	}

	bucketed := 0
	for _, n := range agg.SlotCounts {
		bucketed += n
	}
	if bucketed != 4 {
		t.Errorf("bucketed activities = %d, want 4", bucketed)
	}
}

func TestAggregate_TrackedDates(t *testing.T) {
	d := models.NewDate(2024, time.June, 10)
	entries := []models.TrackerEntry{
		{EntryDate: d, MoodScore: intPtr(1)},
		{EntryDate: d, MoodScore: intPtr(2)}, // same day, second entry
		{EntryDate: d.AddDays(2)},
	}

	agg := Aggregate(entries, nil)

	if len(agg.TrackedDates) != 2 {
		t.Errorf("TrackedDates = %d distinct days, want 2", len(agg.TrackedDates))
	}
	if !agg.FirstEntryDate.Equal(d) {
		t.Errorf("FirstEntryDate = %s, want %s", agg.FirstEntryDate, d)
	}
	if agg.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", agg.EntryCount)
	}
}
