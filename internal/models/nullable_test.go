package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue string
	}{
		{
			name:      "field present with string value",
			json:      `{"start_time": "09:30"}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "09:30",
		},
		{
			name:      "field present with null value",
			json:      `{"start_time": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: "",
		},
		{
			name:      "field present with empty string",
			json:      `{"start_time": ""}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				StartTime NullableString `json:"start_time"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.StartTime.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.StartTime.Set, tt.wantSet)
			}
			if result.StartTime.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.StartTime.Valid, tt.wantValid)
			}
			if result.StartTime.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", result.StartTime.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantValue int
	}{
		{
			name:      "field present with value",
			json:      `{"duration_minutes": 45}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 45,
		},
		{
			name:      "field present with zero",
			json:      `{"duration_minutes": 0}`,
			wantSet:   true,
			wantValid: true,
			wantValue: 0,
		},
		{
			name:      "field present with null",
			json:      `{"duration_minutes": null}`,
			wantSet:   true,
			wantValid: false,
			wantValue: 0,
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				DurationMinutes NullableInt `json:"duration_minutes"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.DurationMinutes.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.DurationMinutes.Set, tt.wantSet)
			}
			if result.DurationMinutes.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.DurationMinutes.Valid, tt.wantValid)
			}
			if result.DurationMinutes.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", result.DurationMinutes.Value, tt.wantValue)
			}
		})
	}
}

func TestNullableString_ToPtr(t *testing.T) {
	tests := []struct {
		name    string
		ns      NullableString
		wantNil bool
		wantVal string
	}{
		{
			name:    "valid string",
			ns:      NullableString{Value: "21:00", Valid: true, Set: true},
			wantNil: false,
			wantVal: "21:00",
		},
		{
			name:    "null value",
			ns:      NullableString{Valid: false, Set: true},
			wantNil: true,
		},
		{
			name:    "not set",
			ns:      NullableString{Valid: false, Set: false},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ptr := tt.ns.ToPtr()
			if tt.wantNil {
				if ptr != nil {
					t.Errorf("ToPtr() = %v, want nil", *ptr)
				}
			} else {
				if ptr == nil {
					t.Errorf("ToPtr() = nil, want %q", tt.wantVal)
				} else if *ptr != tt.wantVal {
					t.Errorf("ToPtr() = %q, want %q", *ptr, tt.wantVal)
				}
			}
		})
	}
}

func TestNullableTime_UnmarshalJSON(t *testing.T) {
	testTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	testTimeJSON := `"2024-01-15T10:30:00Z"`

	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantTime  time.Time
	}{
		{
			name:      "field present with time value",
			json:      `{"ended_at": ` + testTimeJSON + `}`,
			wantSet:   true,
			wantValid: true,
			wantTime:  testTime,
		},
		{
			name:      "field present with null value",
			json:      `{"ended_at": null}`,
			wantSet:   true,
			wantValid: false,
			wantTime:  time.Time{},
		},
		{
			name:      "field absent",
			json:      `{}`,
			wantSet:   false,
			wantValid: false,
			wantTime:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				EndedAt NullableTime `json:"ended_at"`
			}
			err := json.Unmarshal([]byte(tt.json), &result)
			if err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if result.EndedAt.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", result.EndedAt.Set, tt.wantSet)
			}
			if result.EndedAt.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.EndedAt.Valid, tt.wantValid)
			}
			if !result.EndedAt.Value.Equal(tt.wantTime) {
				t.Errorf("Value = %v, want %v", result.EndedAt.Value, tt.wantTime)
			}
		})
	}
}

func TestUpdateActivityRequest_ClearStartTime(t *testing.T) {
	// Explicit null clears the time and makes the activity "anytime".
	var req UpdateActivityRequest
	if err := json.Unmarshal([]byte(`{"start_time": null}`), &req); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !req.StartTime.Set {
		t.Error("Expected StartTime.Set to be true when field is present with null")
	}
	if req.StartTime.Valid {
		t.Error("Expected StartTime.Valid to be false when value is null")
	}

	// Absent field leaves the scheduled time unchanged.
	var req2 UpdateActivityRequest
	if err := json.Unmarshal([]byte(`{"status": "completed"}`), &req2); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if req2.StartTime.Set {
		t.Error("Expected StartTime.Set to be false when field is absent")
	}
	if req2.Status == nil || *req2.Status != StatusCompleted {
		t.Errorf("Status = %v, want completed", req2.Status)
	}

	// A concrete value reschedules.
	var req3 UpdateActivityRequest
	if err := json.Unmarshal([]byte(`{"start_time": "07:15"}`), &req3); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !req3.StartTime.Set || !req3.StartTime.Valid {
		t.Error("Expected StartTime to be set and valid")
	}
	if req3.StartTime.Value != "07:15" {
		t.Errorf("StartTime.Value = %q, want %q", req3.StartTime.Value, "07:15")
	}
}
