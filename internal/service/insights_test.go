package service

import (
	"context"
	"testing"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/insights"
	"github.com/PsySom/ready-set-prompt/internal/models"
)

type insightsFixture struct {
	entries  *mockEntryRepo
	acts     *mockActivityRepo
	journal  *mockJournalRepo
	recs     *mockRecRepo
	rules    *mockRuleRepo
	svc      InsightsService
	fixedNow time.Time
}

func newInsightsFixture(t *testing.T) *insightsFixture {
	t.Helper()
	f := &insightsFixture{
		entries:  &mockEntryRepo{},
		acts:     &mockActivityRepo{},
		journal:  &mockJournalRepo{},
		recs:     &mockRecRepo{},
		rules:    &mockRuleRepo{rules: defaultTestRules()},
		fixedNow: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
	svc := NewInsightsService(f.entries, f.acts, f.journal, f.recs, f.rules,
		insights.New(testLogger()))
	svc.(*insightsService).now = func() time.Time { return f.fixedNow }
	f.svc = svc
	return f
}

func TestGetInsights_Overview(t *testing.T) {
	f := newInsightsFixture(t)
	today := models.DateOf(f.fixedNow)

	f.entries.entries = append(f.entries.entries,
		models.TrackerEntry{ID: "e1", UserID: "user-1", EntryDate: today.AddDays(-1), MoodScore: intPtr(2)},
		models.TrackerEntry{ID: "e2", UserID: "user-1", EntryDate: today, MoodScore: intPtr(4)},
	)
	f.acts.activities = append(f.acts.activities,
		models.Activity{ID: "a1", UserID: "user-1", Date: today, Status: models.StatusCompleted},
		models.Activity{ID: "a2", UserID: "user-1", Date: today, Status: models.StatusPlanned},
	)
	f.journal.sessions = append(f.journal.sessions,
		models.JournalSession{ID: "s1", UserID: "user-1", StartedAt: f.fixedNow.AddDate(0, 0, -1)},
	)

	resp, err := f.svc.GetInsights(context.Background(), "user-1", "month")
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}

	if !resp.Overview.HasMood || resp.Overview.AvgMood != 3 {
		t.Errorf("avg mood = %v (has=%v), want 3", resp.Overview.AvgMood, resp.Overview.HasMood)
	}
	if resp.Overview.CompletionRate != 0.5 {
		t.Errorf("completion rate = %v, want 0.5", resp.Overview.CompletionRate)
	}
	if resp.Overview.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", resp.Overview.CurrentStreak)
	}
	if resp.Overview.JournalCount != 1 {
		t.Errorf("journal count = %d, want 1", resp.Overview.JournalCount)
	}
	if !resp.ComputedAt.Equal(f.fixedNow) {
		t.Errorf("computed_at = %v, want injected now", resp.ComputedAt)
	}
	if len(resp.MoodTrend) != 2 {
		t.Errorf("got %d trend points, want 2", len(resp.MoodTrend))
	}
}

func TestGetInsights_IncludesOpenRecommendations(t *testing.T) {
	f := newInsightsFixture(t)

	_, err := f.recs.CreateBatch(context.Background(), []models.Recommendation{{
		UserID:             "user-1",
		ActivityTemplateID: "tpl-breathing",
		Reason:             "Your stress levels have been elevated",
		Priority:           models.PriorityHigh,
	}})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	resp, err := f.svc.GetInsights(context.Background(), "user-1", "week")
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(resp.Recommendations))
	}
	if resp.Recommendations[0].ActivityTemplateID != "tpl-breathing" {
		t.Errorf("unexpected recommendation %+v", resp.Recommendations[0])
	}
}

func TestGetInsights_ScopesEntriesToPeriod(t *testing.T) {
	f := newInsightsFixture(t)
	today := models.DateOf(f.fixedNow)

	f.entries.entries = append(f.entries.entries,
		models.TrackerEntry{ID: "e1", UserID: "user-1", EntryDate: today, MoodScore: intPtr(4)},
		models.TrackerEntry{ID: "e2", UserID: "user-1", EntryDate: today.AddDays(-20), MoodScore: intPtr(-4)},
	)

	resp, err := f.svc.GetInsights(context.Background(), "user-1", "week")
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	// The 20-day-old entry falls outside the week window.
	if resp.Overview.AvgMood != 4 {
		t.Errorf("avg mood = %v, want 4", resp.Overview.AvgMood)
	}
}

func TestGetInsights_RejectsUnknownPeriod(t *testing.T) {
	f := newInsightsFixture(t)
	if _, err := f.svc.GetInsights(context.Background(), "user-1", "decade"); err == nil {
		t.Error("expected an error for an unknown period")
	}
}

func TestExport_ReturnsRawRecords(t *testing.T) {
	f := newInsightsFixture(t)
	today := models.DateOf(f.fixedNow)

	f.entries.entries = append(f.entries.entries,
		models.TrackerEntry{ID: "e1", UserID: "user-1", EntryDate: today},
	)
	f.acts.activities = append(f.acts.activities,
		models.Activity{ID: "a1", UserID: "user-1", Date: today, Status: models.StatusPlanned},
	)
	f.journal.sessions = append(f.journal.sessions,
		models.JournalSession{ID: "s1", UserID: "user-1", StartedAt: f.fixedNow.Add(-time.Hour)},
	)
	// Another user's records must not leak into the export.
	f.entries.entries = append(f.entries.entries,
		models.TrackerEntry{ID: "e2", UserID: "user-2", EntryDate: today},
	)

	export, err := f.svc.Export(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if export.Period != "month" {
		t.Errorf("period = %q, want default month", export.Period)
	}
	if len(export.TrackerEntries) != 1 || export.TrackerEntries[0].ID != "e1" {
		t.Errorf("unexpected tracker entries: %+v", export.TrackerEntries)
	}
	if len(export.Activities) != 1 {
		t.Errorf("got %d activities, want 1", len(export.Activities))
	}
	if len(export.JournalSessions) != 1 {
		t.Errorf("got %d journal sessions, want 1", len(export.JournalSessions))
	}
	if !export.ExportedAt.Equal(f.fixedNow) {
		t.Errorf("exported_at = %v, want injected now", export.ExportedAt)
	}
}
