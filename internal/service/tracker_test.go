package service

import (
	"context"
	"testing"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

func TestCreateEntry_ValidatesDimensionRanges(t *testing.T) {
	repo := &mockEntryRepo{}
	svc := NewTrackerService(repo)
	date := models.NewDate(2024, time.June, 10)

	tests := []struct {
		name    string
		req     models.CreateTrackerEntryRequest
		wantErr bool
	}{
		{
			name: "valid entry",
			req: models.CreateTrackerEntryRequest{
				EntryDate: date, MoodScore: intPtr(-5), StressLevel: intPtr(10),
			},
		},
		{
			name: "mood below range",
			req: models.CreateTrackerEntryRequest{
				EntryDate: date, MoodScore: intPtr(-6),
			},
			wantErr: true,
		},
		{
			name: "stress above range",
			req: models.CreateTrackerEntryRequest{
				EntryDate: date, StressLevel: intPtr(11),
			},
			wantErr: true,
		},
		{
			name: "energy above range",
			req: models.CreateTrackerEntryRequest{
				EntryDate: date, EnergyLevel: intPtr(6),
			},
			wantErr: true,
		},
		{
			name: "all dimensions nil is allowed",
			req: models.CreateTrackerEntryRequest{
				EntryDate: date,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEntry(context.Background(), "user-1", &tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateEntry error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateEntry_AttachesEmotions(t *testing.T) {
	repo := &mockEntryRepo{}
	svc := NewTrackerService(repo)

	entry, err := svc.CreateEntry(context.Background(), "user-1", &models.CreateTrackerEntryRequest{
		EntryDate: models.NewDate(2024, time.June, 10),
		MoodScore: intPtr(2),
		Emotions: []models.CreateEmotionRequest{
			{Label: "calm", Intensity: 6, Category: models.EmotionPositive},
			{Label: "tired", Intensity: 4, Category: models.EmotionNegative},
		},
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if len(entry.Emotions) != 2 {
		t.Errorf("got %d emotions, want 2", len(entry.Emotions))
	}
}

func TestCreateEntry_RejectsBadEmotionCategory(t *testing.T) {
	repo := &mockEntryRepo{}
	svc := NewTrackerService(repo)

	_, err := svc.CreateEntry(context.Background(), "user-1", &models.CreateTrackerEntryRequest{
		EntryDate: models.NewDate(2024, time.June, 10),
		Emotions: []models.CreateEmotionRequest{
			{Label: "odd", Intensity: 5, Category: "ambivalent"},
		},
	})
	if err == nil {
		t.Error("expected an error for an unknown emotion category")
	}
}

func TestDeleteEntry_ChecksOwnership(t *testing.T) {
	repo := &mockEntryRepo{entries: []models.TrackerEntry{
		{ID: "e1", UserID: "user-1", EntryDate: models.NewDate(2024, time.June, 10)},
	}}
	svc := NewTrackerService(repo)

	if err := svc.DeleteEntry(context.Background(), "user-2", "e1"); err == nil {
		t.Error("deleting another user's entry should fail")
	}
	if err := svc.DeleteEntry(context.Background(), "user-1", "e1"); err != nil {
		t.Errorf("DeleteEntry: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Error("entry not deleted")
	}
}

func TestGetEntries_RejectsInvertedRange(t *testing.T) {
	svc := NewTrackerService(&mockEntryRepo{})
	from := models.NewDate(2024, time.June, 10)
	to := from.AddDays(-5)

	if _, err := svc.GetEntries(context.Background(), "user-1", from, to); err == nil {
		t.Error("expected an error for an inverted range")
	}
}
