package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReminderOffset is a label from the fixed set of durations a user can
// subtract from a habit's start time. Absence of a label means no reminder.
type ReminderOffset string

const (
	Offset5Min  ReminderOffset = "5 min"
	Offset10Min ReminderOffset = "10 min"
	Offset30Min ReminderOffset = "30 min"
	Offset1Hour ReminderOffset = "1 hour"
)

var offsetMinutes = map[ReminderOffset]int{
	Offset5Min:  5,
	Offset10Min: 10,
	Offset30Min: 30,
	Offset1Hour: 60,
}

// ParseReminderOffset maps a label to its offset, rejecting anything
// outside the enumerated set.
func ParseReminderOffset(label string) (ReminderOffset, error) {
	o := ReminderOffset(label)
	if _, ok := offsetMinutes[o]; !ok {
		return "", fmt.Errorf("unknown reminder offset %q", label)
	}
	return o, nil
}

// OffsetForMinutes returns the label for a minute count. Any value outside
// {5, 10, 30, 60} means no reminder and reports false.
func OffsetForMinutes(minutes int) (ReminderOffset, bool) {
	for o, m := range offsetMinutes {
		if m == minutes {
			return o, true
		}
	}
	return "", false
}

// Minutes returns the offset duration in minutes, 0 for an invalid label.
func (o ReminderOffset) Minutes() int {
	return offsetMinutes[o]
}

// Duration returns the offset as a time.Duration.
func (o ReminderOffset) Duration() time.Duration {
	return time.Duration(o.Minutes()) * time.Minute
}

// Valid reports whether the label belongs to the enumerated set.
func (o ReminderOffset) Valid() bool {
	_, ok := offsetMinutes[o]
	return ok
}

// UnmarshalJSON implements json.Unmarshaler, rejecting unknown labels so a
// bad payload fails the request rather than storing a wrong value.
func (o *ReminderOffset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseReminderOffset(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
