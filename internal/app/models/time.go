package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	clockWireLayout = "15:04:05"
)

// Date is a calendar date serialized as yyyy-mm-dd
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// String returns the wire representation
func (d Date) String() string {
	return d.Format(dateLayout)
}

// ClockTime is a time of day stored with seconds on the wire (HH:MM:SS)
// and displayed truncated to minutes.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// NewClockTime builds a ClockTime from hour, minute and second
func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute, Second: second}
}

// MarshalJSON implements json.Marshaler
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%02d:%02d:%02d"`, c.Hour, c.Minute, c.Second)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	// The backend serializes LocalTime either with or without seconds
	layout := clockWireLayout
	if len(s) == len("15:04") {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", s, err)
	}
	c.Hour, c.Minute, c.Second = t.Hour(), t.Minute(), t.Second()
	return nil
}

// String returns the wire representation with seconds
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Display returns the time truncated to minutes, as rendered in listings
func (c ClockTime) Display() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
