package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var ErrInvalidHours = errors.New("domain: invalid business hours")

// HoursWindow is one opening interval [Open, Close) on a weekday.
type HoursWindow struct {
	Weekday time.Weekday
	Open    types.TimeString
	Close   types.TimeString
}

// BusinessHours is the weekly opening table of a business.
// A weekday without windows is closed.
type BusinessHours struct {
	BusinessID string
	Windows    []HoursWindow
	// IsDefault is set when the business has no table and the configured default is used.
	IsDefault bool
}

// For returns the windows of weekday ordered by opening time.
func (h *BusinessHours) For(weekday time.Weekday) []HoursWindow {
	var out []HoursWindow
	for _, w := range h.Windows {
		if w.Weekday == weekday {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Open.IsBefore(out[j].Open) })
	return out
}

// IsOpen reports whether any window exists on weekday.
func (h *BusinessHours) IsOpen(weekday time.Weekday) bool {
	return len(h.For(weekday)) > 0
}

// Fits reports whether [start, end) lies entirely inside one window of weekday.
func (h *BusinessHours) Fits(weekday time.Weekday, start, end types.TimeString) bool {
	for _, w := range h.For(weekday) {
		if !start.IsBefore(w.Open) && !end.IsAfter(w.Close) {
			return true
		}
	}
	return false
}

// Validate checks every window is well formed and windows of a day do not overlap.
func (h *BusinessHours) Validate() error {
	for _, w := range h.Windows {
		if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrInvalidHours, w.Weekday)
		}
		if err := w.Open.Validate(); err != nil {
			return fmt.Errorf("%w: open %q", ErrInvalidHours, w.Open)
		}
		if err := w.Close.Validate(); err != nil {
			return fmt.Errorf("%w: close %q", ErrInvalidHours, w.Close)
		}
		if !w.Open.IsBefore(w.Close) {
			return fmt.Errorf("%w: %s opens at %s and closes at %s", ErrInvalidHours, w.Weekday, w.Open, w.Close)
		}
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		windows := h.For(day)
		for i := 1; i < len(windows); i++ {
			if windows[i].Open.IsBefore(windows[i-1].Close) {
				return fmt.Errorf("%w: overlapping windows on %s", ErrInvalidHours, day)
			}
		}
	}
	return nil
}

// DefaultHours is Monday to Friday 09:00-12:00 and 13:00-17:00.
func DefaultHours() []HoursWindow {
	var windows []HoursWindow
	for day := time.Monday; day <= time.Friday; day++ {
		windows = append(windows,
			HoursWindow{Weekday: day, Open: "09:00", Close: "12:00"},
			HoursWindow{Weekday: day, Open: "13:00", Close: "17:00"},
		)
	}
	return windows
}
