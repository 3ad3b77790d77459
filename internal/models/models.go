package models

import "time"

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrackerEntry is a single mood/stress/energy check-in. A user may record
// several entries per day; every dimension is optional and a nil pointer
// means "not tracked", never zero.
type TrackerEntry struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	EntryDate           Date       `json:"entry_date"`
	EntryTime           *TimeOfDay `json:"entry_time,omitempty"`
	MoodScore           *int       `json:"mood_score,omitempty"`           // -5..+5
	StressLevel         *int       `json:"stress_level,omitempty"`         // 0..10
	AnxietyLevel        *int       `json:"anxiety_level,omitempty"`        // 0..10
	EnergyLevel         *int       `json:"energy_level,omitempty"`         // -5..+5
	ProcessSatisfaction *int       `json:"process_satisfaction,omitempty"` // 0..10
	ResultSatisfaction  *int       `json:"result_satisfaction,omitempty"`  // 0..10
	Emotions            []Emotion  `json:"tracker_emotions,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Emotion is a labelled emotion attached to a tracker entry.
type Emotion struct {
	ID        string          `json:"id"`
	EntryID   string          `json:"entry_id"`
	Label     string          `json:"label"`
	Intensity int             `json:"intensity"` // 0..10
	Category  EmotionCategory `json:"category"`
}

// Activity is a planned or logged activity on the user's calendar.
// StartTime is nil for "anytime" activities.
type Activity struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	Title            string           `json:"title"`
	Date             Date             `json:"date"`
	StartTime        *TimeOfDay       `json:"start_time,omitempty"`
	DurationMinutes  *int             `json:"duration_minutes,omitempty"`
	Category         ActivityCategory `json:"category"`
	ImpactType       ActivityImpact   `json:"impact_type"`
	Status           ActivityStatus   `json:"status"`
	TemplateID       *string          `json:"template_id,omitempty"`
	RecommendationID *string          `json:"recommendation_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ActivityTemplate is a reusable activity definition. Recommendations point
// at templates; accepting one instantiates an Activity from it.
type ActivityTemplate struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Emoji                  string           `json:"emoji"`
	Description            *string          `json:"description,omitempty"`
	Category               ActivityCategory `json:"category"`
	ImpactType             ActivityImpact   `json:"impact_type"`
	DefaultDurationMinutes *int             `json:"default_duration_minutes,omitempty"`
	IsSystem               bool             `json:"is_system"`
	CreatedAt              time.Time        `json:"created_at"`
}

// JournalSession is one guided or free journaling conversation.
// EndedAt is nil while the session is still open.
type JournalSession struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      SessionType      `json:"session_type"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   *time.Time       `json:"ended_at,omitempty"`
	Messages  []JournalMessage `json:"journal_messages,omitempty"`
}

// JournalMessage is one message within a session. Messages are append-only
// while the session is open.
type JournalMessage struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Type      MessageType `json:"message_type"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateTrackerEntryRequest is the payload for recording a check-in.
type CreateTrackerEntryRequest struct {
	EntryDate           Date                   `json:"entry_date" binding:"required"`
	EntryTime           *TimeOfDay             `json:"entry_time"`
	MoodScore           *int                   `json:"mood_score"`
	StressLevel         *int                   `json:"stress_level"`
	AnxietyLevel        *int                   `json:"anxiety_level"`
	EnergyLevel         *int                   `json:"energy_level"`
	ProcessSatisfaction *int                   `json:"process_satisfaction"`
	ResultSatisfaction  *int                   `json:"result_satisfaction"`
	Emotions            []CreateEmotionRequest `json:"emotions"`
}

// CreateEmotionRequest is an emotion nested in a tracker entry payload.
type CreateEmotionRequest struct {
	Label     string          `json:"label" binding:"required"`
	Intensity int             `json:"intensity" binding:"min=0,max=10"`
	Category  EmotionCategory `json:"category" binding:"required"`
}

// CreateActivityRequest is the payload for scheduling an activity.
type CreateActivityRequest struct {
	Title           string           `json:"title" binding:"required"`
	Date            Date             `json:"date" binding:"required"`
	StartTime       *TimeOfDay       `json:"start_time"`
	DurationMinutes *int             `json:"duration_minutes"`
	Category        ActivityCategory `json:"category" binding:"required"`
	ImpactType      ActivityImpact   `json:"impact_type" binding:"required"`
	TemplateID      *string          `json:"template_id"`
}

// UpdateActivityRequest is the payload for editing an activity. Pointer
// fields distinguish "leave unchanged" from an explicit new value; StartTime
// uses NullableString so a client can clear the time ("anytime") with null.
type UpdateActivityRequest struct {
	Title           *string           `json:"title"`
	Date            *Date             `json:"date"`
	StartTime       NullableString    `json:"start_time"`
	DurationMinutes *int              `json:"duration_minutes"`
	Category        *ActivityCategory `json:"category"`
	ImpactType      *ActivityImpact   `json:"impact_type"`
	Status          *ActivityStatus   `json:"status"`
}

// StartJournalSessionRequest opens a new journaling session.
type StartJournalSessionRequest struct {
	Type SessionType `json:"session_type" binding:"required"`
}

// AppendJournalMessageRequest appends one message to an open session.
type AppendJournalMessageRequest struct {
	Type    MessageType `json:"message_type" binding:"required"`
	Content string      `json:"content" binding:"required"`
}
