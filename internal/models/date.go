package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. Postgres date columns
// arrive over PostgREST as "2006-01-02" strings, which the stdlib time.Time
// JSON codec rejects, so dates get their own type with a matching codec.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date (in the timestamp's location).
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// String formats the date as "2006-01-02".
func (d Date) String() string { return d.t.Format(dateLayout) }

// Time returns the date as a UTC midnight timestamp.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Weekday returns the day of week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// MarshalJSON encodes the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "2006-01-02" and, for robustness against timestamp
// columns, a full RFC 3339 timestamp whose date part is kept.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	*d = DateOf(t)
	return nil
}

// TimeOfDay is a wall-clock time within a day, stored as "HH:MM" or
// "HH:MM:SS" (the format Postgres time columns serialize to).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var td TimeOfDay
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return td, fmt.Errorf("invalid time of day %q", s)
	}
	if _, err := fmt.Sscanf(parts[0]+":"+parts[1], "%d:%d", &td.Hour, &td.Minute); err != nil {
		return td, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if td.Hour < 0 || td.Hour > 23 || td.Minute < 0 || td.Minute > 59 {
		return td, fmt.Errorf("time of day %q out of range", s)
	}
	return td, nil
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON encodes the time as "HH:MM".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses "HH:MM" or "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
