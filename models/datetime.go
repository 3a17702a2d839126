package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Wire formats are fixed by the mobile contract and parsed strictly:
// a value that does not match fails the request instead of being stored.
const (
	DateLayout      = "02/01/2006"
	TimeOfDayLayout = "15:04"
)

// Date is a calendar date carried as dd/mm/yyyy on the wire and as a
// native DATE column in the database.
type Date struct {
	time.Time
}

// ParseDate parses a dd/mm/yyyy string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected dd/mm/yyyy", s)
	}
	return Date{Time: t}, nil
}

// String renders the wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{Time: v}
		return nil
	case string:
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Date: %w", v, err)
		}
		*d = Date{Time: t}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// At combines the date and a clock time into a single local timestamp.
func (d Date) At(t TimeOfDay) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

// TimeOfDay is a clock time carried as HH:mm on the wire and as a native
// TIME column in the database. The day component is always the zero date.
type TimeOfDay struct {
	time.Time
}

// ParseTimeOfDay parses an HH:mm string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:mm", s)
	}
	return TimeOfDay{Time: t}, nil
}

// String renders the wire format.
func (t TimeOfDay) String() string {
	return t.Format(TimeOfDayLayout)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minuteOfDay() < other.minuteOfDay()
}

func (t TimeOfDay) minuteOfDay() int {
	return t.Hour()*60 + t.Minute()
}

// MarshalJSON implements json.Marshaler.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeOfDayLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
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

// Value implements driver.Valuer for TIME columns.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.Format("15:04:05"), nil
}

// Scan implements sql.Scanner.
func (t *TimeOfDay) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = TimeOfDay{}
		return nil
	case time.Time:
		*t = TimeOfDay{Time: time.Date(0, time.January, 1, v.Hour(), v.Minute(), 0, 0, time.UTC)}
		return nil
	case string:
		parsed, err := time.Parse("15:04:05", v)
		if err != nil {
			parsed, err = time.Parse(TimeOfDayLayout, v)
		}
		if err != nil {
			return fmt.Errorf("cannot scan %q into TimeOfDay: %w", v, err)
		}
		*t = TimeOfDay{Time: parsed}
		return nil
	case int64:
		// Microseconds since midnight, as TIME columns are encoded.
		mins := v / 60_000_000
		*t = TimeOfDay{Time: time.Date(0, time.January, 1, int(mins/60), int(mins%60), 0, 0, time.UTC)}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", value)
	}
}
