package models

import (
	"encoding/json"
	"time"
)

// NullableString represents a string field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=""
// - Field present with null: Set=true, Valid=false, Value=""
// - Field present with value: Set=true, Valid=true, Value="the value"
//
// Update payloads need all three states: an activity edit that omits
// start_time leaves it unchanged, while start_time:null turns the activity
// into an "anytime" one. Go's standard JSON unmarshaling collapses absent
// and null into nil for pointer types, so these types carry the distinction.
type NullableString struct {
	Value string
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableString.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableString.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// ToPtr converts NullableString to *string. Returns nil if Valid is false.
func (ns NullableString) ToPtr() *string {
	if !ns.Valid {
		return nil
	}
	return &ns.Value
}

// NullableInt carries the same absent/null/value distinction for integer
// fields such as the optional mood dimensions and activity durations.
type NullableInt struct {
	Value int
	Valid bool
	Set   bool
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableInt.
func (ni *NullableInt) UnmarshalJSON(data []byte) error {
	ni.Set = true

	if string(data) == "null" {
		ni.Valid = false
		ni.Value = 0
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	ni.Value = n
	ni.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableInt.
func (ni NullableInt) MarshalJSON() ([]byte, error) {
	if !ni.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ni.Value)
}

// ToPtr converts NullableInt to *int. Returns nil if Valid is false.
func (ni NullableInt) ToPtr() *int {
	if !ni.Valid {
		return nil
	}
	return &ni.Value
}

// NullableTime carries the same absent/null/value distinction for timestamp
// fields such as a session's ended_at.
type NullableTime struct {
	Value time.Time
	Valid bool
	Set   bool
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableTime.
func (nt *NullableTime) UnmarshalJSON(data []byte) error {
	nt.Set = true

	if string(data) == "null" {
		nt.Valid = false
		nt.Value = time.Time{}
		return nil
	}

	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	nt.Value = t
	nt.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableTime.
func (nt NullableTime) MarshalJSON() ([]byte, error) {
	if !nt.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nt.Value)
}

// ToPtr converts NullableTime to *time.Time. Returns nil if Valid is false.
func (nt NullableTime) ToPtr() *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Value
}
