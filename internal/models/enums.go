package models

import "fmt"

// ActivityCategory classifies what kind of activity a record describes.
type ActivityCategory string

const (
	CategorySleep      ActivityCategory = "sleep"
	CategoryNutrition  ActivityCategory = "nutrition"
	CategoryHydration  ActivityCategory = "hydration"
	CategoryExercise   ActivityCategory = "exercise"
	CategoryLeisure    ActivityCategory = "leisure"
	CategoryHobby      ActivityCategory = "hobby"
	CategoryWork       ActivityCategory = "work"
	CategorySocial     ActivityCategory = "social"
	CategoryPractice   ActivityCategory = "practice"
	CategoryHealth     ActivityCategory = "health"
	CategoryReflection ActivityCategory = "reflection"
)

// AllActivityCategories lists every valid category in canonical order.
var AllActivityCategories = []ActivityCategory{
	CategorySleep, CategoryNutrition, CategoryHydration, CategoryExercise,
	CategoryLeisure, CategoryHobby, CategoryWork, CategorySocial,
	CategoryPractice, CategoryHealth, CategoryReflection,
}

// Valid reports whether the category is one of the known values.
func (c ActivityCategory) Valid() bool {
	switch c {
	case CategorySleep, CategoryNutrition, CategoryHydration, CategoryExercise,
		CategoryLeisure, CategoryHobby, CategoryWork, CategorySocial,
		CategoryPractice, CategoryHealth, CategoryReflection:
		return true
	}
	return false
}

// Emoji returns the display glyph for the category. The switch is exhaustive
// over the closed set; an unknown category is a programming error.
func (c ActivityCategory) Emoji() string {
	switch c {
	case CategorySleep:
		return "😴"
	case CategoryNutrition:
		return "🍎"
	case CategoryHydration:
		return "💧"
	case CategoryExercise:
		return "🏃"
	case CategoryLeisure:
		return "🎮"
	case CategoryHobby:
		return "🎨"
	case CategoryWork:
		return "💼"
	case CategorySocial:
		return "👥"
	case CategoryPractice:
		return "🧘"
	case CategoryHealth:
		return "🩺"
	case CategoryReflection:
		return "📝"
	}
	panic(fmt.Sprintf("unknown activity category %q", string(c)))
}

// ActivityImpact describes how an activity tends to affect the user.
type ActivityImpact string

const (
	ImpactRestorative ActivityImpact = "restorative"
	ImpactDraining    ActivityImpact = "draining"
	ImpactNeutral     ActivityImpact = "neutral"
	ImpactMixed       ActivityImpact = "mixed"
)

// Valid reports whether the impact is one of the known values.
func (i ActivityImpact) Valid() bool {
	switch i {
	case ImpactRestorative, ImpactDraining, ImpactNeutral, ImpactMixed:
		return true
	}
	return false
}

// ActivityStatus tracks the user-driven lifecycle of a scheduled activity.
type ActivityStatus string

const (
	StatusPlanned    ActivityStatus = "planned"
	StatusInProgress ActivityStatus = "in_progress"
	StatusCompleted  ActivityStatus = "completed"
	StatusCancelled  ActivityStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// SessionType identifies which journaling flow a session belongs to.
type SessionType string

const (
	SessionMorning SessionType = "morning"
	SessionEvening SessionType = "evening"
	SessionFree    SessionType = "free"
)

// Valid reports whether the session type is one of the known values.
func (s SessionType) Valid() bool {
	switch s {
	case SessionMorning, SessionEvening, SessionFree:
		return true
	}
	return false
}

// MessageType distinguishes user-authored journal messages from app prompts.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageApp  MessageType = "app"
)

// Valid reports whether the message type is one of the known values.
func (m MessageType) Valid() bool {
	return m == MessageUser || m == MessageApp
}

// EmotionCategory buckets a tracked emotion by valence.
type EmotionCategory string

const (
	EmotionNegative EmotionCategory = "negative"
	EmotionNeutral  EmotionCategory = "neutral"
	EmotionPositive EmotionCategory = "positive"
)

// Valid reports whether the emotion category is one of the known values.
func (e EmotionCategory) Valid() bool {
	switch e {
	case EmotionNegative, EmotionNeutral, EmotionPositive:
		return true
	}
	return false
}

// TimeSlot is a coarse bucket over the time of day, used by the activity
// pattern analysis. Boundaries: night [21:00,05:00), morning [05:00,12:00),
// afternoon [12:00,18:00), evening [18:00,21:00).
type TimeSlot string

const (
	SlotNight     TimeSlot = "night"
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// AllTimeSlots lists the slots in day order starting from morning.
var AllTimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// SlotForHour maps an hour of day (0-23) to its time slot.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour >= 21 || hour < 5:
		return SlotNight
	case hour < 12:
		return SlotMorning
	case hour < 18:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// Label returns a human-readable name for the slot.
func (t TimeSlot) Label() string {
	switch t {
	case SlotNight:
		return "Night"
	case SlotMorning:
		return "Morning"
	case SlotAfternoon:
		return "Afternoon"
	case SlotEvening:
		return "Evening"
	}
	panic(fmt.Sprintf("unknown time slot %q", string(t)))
}
