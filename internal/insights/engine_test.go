package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

func TestAnalyze_StressedWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	today := models.DateOf(now)

	// Two of three recent entries show elevated stress or anxiety; no
	// activities at all.
	entries := []models.TrackerEntry{
		{EntryDate: today.AddDays(-2), StressLevel: intPtr(8), MoodScore: intPtr(1)},
		{EntryDate: today.AddDays(-1), AnxietyLevel: intPtr(7), MoodScore: intPtr(0)},
		{EntryDate: today, StressLevel: intPtr(3), MoodScore: intPtr(2)},
	}

	engine := New(&captureLogger{})
	out := engine.Analyze(Input{
		Entries: entries,
		Rules:   DefaultRules(testTemplates()),
		Now:     now,
	})

	byTemplate := candidateTemplates(out.Candidates)
	c, ok := byTemplate["tpl-stress-relief"]
	if !ok {
		t.Fatal("expected a stress-relief candidate")
	}
	if c.Priority != models.PriorityHigh {
		t.Errorf("stress-relief priority = %d, want %d", c.Priority, models.PriorityHigh)
	}
	// No activities in the window, so neither the completion rule nor the
	// activity-lift heuristic may fire.
	if _, ok := byTemplate["tpl-reduce-load"]; ok {
		t.Error("low-completion fired with no activities")
	}
	for _, p := range out.Patterns {
		if strings.Contains(p.Title, "boost") {
			t.Error("activity-lift pattern fired with no activities")
		}
	}
}

func TestAnalyze_OverviewStats(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	today := models.DateOf(now)

	entries := []models.TrackerEntry{
		{EntryDate: today.AddDays(-1), MoodScore: intPtr(2)},
		{EntryDate: today, MoodScore: intPtr(3)},
	}
	activities := []models.Activity{
		{Date: today, Status: models.StatusCompleted},
		{Date: today, Status: models.StatusPlanned},
		{Date: today, Status: models.StatusCancelled},
	}
	sessions := []models.JournalSession{
		{StartedAt: now.AddDate(0, 0, -1)},
	}

	engine := New(&captureLogger{})
	out := engine.Analyze(Input{
		Entries:    entries,
		Activities: activities,
		Sessions:   sessions,
		Rules:      DefaultRules(testTemplates()),
		Now:        now,
	})

	ov := out.Overview
	if !ov.HasMood || ov.AvgMood != 2.5 {
		t.Errorf("avg mood = %v (has=%v), want 2.5", ov.AvgMood, ov.HasMood)
	}
	if got := ov.CompletionRate; got < 0.33 || got > 0.34 {
		t.Errorf("completion rate = %v, want 1/3", got)
	}
	if ov.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", ov.CurrentStreak)
	}
	if ov.LongestStreak != 2 {
		t.Errorf("longest streak = %d, want 2", ov.LongestStreak)
	}
	if ov.JournalCount != 1 {
		t.Errorf("journal count = %d, want 1", ov.JournalCount)
	}
}

func TestAnalyze_MoodTrend(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	today := models.DateOf(now)

	entries := []models.TrackerEntry{
		{EntryDate: today, MoodScore: intPtr(4)},
		{EntryDate: today.AddDays(-2), MoodScore: intPtr(1)},
		{EntryDate: today.AddDays(-2), MoodScore: intPtr(2)},
		{EntryDate: today.AddDays(-1)}, // unscored, excluded from trend
	}

	engine := New(&captureLogger{})
	out := engine.Analyze(Input{Entries: entries, Now: now})

	if len(out.MoodTrend) != 2 {
		t.Fatalf("got %d trend points, want 2", len(out.MoodTrend))
	}
	first, second := out.MoodTrend[0], out.MoodTrend[1]
	if !first.Date.Before(second.Date) {
		t.Error("trend points not in ascending date order")
	}
	if first.AvgMood != 1.5 || first.Entries != 2 {
		t.Errorf("first point = %+v, want avg 1.5 over 2 entries", first)
	}
	if second.AvgMood != 4 || second.Entries != 1 {
		t.Errorf("second point = %+v, want avg 4 over 1 entry", second)
	}
}

func TestAnalyze_EmptySnapshot(t *testing.T) {
	engine := New(&captureLogger{})
	out := engine.Analyze(Input{
		Rules: DefaultRules(testTemplates()),
		Now:   time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC),
	})

	if out.Overview.HasMood {
		t.Error("empty snapshot reports mood data")
	}
	if out.Overview.CompletionRate != 0 {
		t.Errorf("completion rate = %v, want 0", out.Overview.CompletionRate)
	}
	if out.Overview.CurrentStreak != 0 || out.Overview.LongestStreak != 0 {
		t.Error("empty snapshot reports a streak")
	}
	if len(out.Patterns) != 0 {
		t.Errorf("got %d patterns, want 0", len(out.Patterns))
	}
	// The journaling nudge is the one rule that fires on a blank account.
	byTemplate := candidateTemplates(out.Candidates)
	if _, ok := byTemplate["tpl-journaling"]; !ok {
		t.Error("expected a journaling candidate for an account with no sessions")
	}
	if len(out.Candidates) != 1 {
		t.Errorf("got %d candidates, want 1", len(out.Candidates))
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	today := models.DateOf(now)

	in := Input{
		Entries: []models.TrackerEntry{
			{EntryDate: today, MoodScore: intPtr(-3), StressLevel: intPtr(8)},
			{EntryDate: today.AddDays(-1), MoodScore: intPtr(-4)},
		},
		Activities: []models.Activity{
			{Date: today, Status: models.StatusPlanned},
		},
		Rules: DefaultRules(testTemplates()),
		Now:   now,
	}

	engine := New(&captureLogger{})
	first := engine.Analyze(in)
	second := engine.Analyze(in)

	if len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("candidate count differs between runs: %d vs %d",
			len(first.Candidates), len(second.Candidates))
	}
	for i := range first.Candidates {
		if first.Candidates[i] != second.Candidates[i] {
			t.Errorf("candidate %d differs between runs", i)
		}
	}
	if len(first.Patterns) != len(second.Patterns) {
		t.Fatalf("pattern count differs between runs")
	}
	for i := range first.Patterns {
		if first.Patterns[i] != second.Patterns[i] {
			t.Errorf("pattern %d differs between runs", i)
		}
	}
}
