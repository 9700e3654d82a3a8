package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout     = "15:04"
	minutesPerDay  = 24 * 60
	secondsLayout  = "15:04:05"
	meridiemLayout = "3:04 PM"
)

var (
	// ErrInvalidFormat is returned when a string is not a time of day
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDay is returned when arithmetic crosses midnight
	ErrOutOfDay = errors.New("time is outside of a single day")
)

// TimeString is a time of day stored in canonical "HH:MM" form.
// It is stored in postgres as TIME and serialized to JSON as a string.
type TimeString string

// NewTimeString returns the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses "HH:MM", "H:MM", "HH:MM:SS" and "h:mm AM/PM".
func NewTimeStringFromString(s string) (TimeString, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasSuffix(raw, "AM") || strings.HasSuffix(raw, "PM") {
		// "9:00AM" -> "9:00 AM"
		raw = strings.TrimSpace(raw[:len(raw)-2]) + " " + raw[len(raw)-2:]
		t, err := time.Parse(meridiemLayout, raw)
		if err != nil {
			return "", ErrInvalidFormat
		}
		return NewTimeString(t), nil
	}

	for _, layout := range []string{timeLayout, secondsLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", ErrInvalidFormat
}

// FromMinutes builds a TimeString from minutes since midnight.
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", ErrOutOfDay
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns t shifted by m minutes. Results past midnight are rejected.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(current + m)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the canonical "HH:MM" form.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

func (t TimeString) String() string {
	return string(t)
}

// On returns the moment on the given date at this time of day.
func (t TimeString) On(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres returns TIME as "HH:MM:SS" or time.Time.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
