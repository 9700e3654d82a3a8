package get_available_slots

import (
	"fmt"
	"strings"
	"time"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessID) == "" {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.StaffID != nil && strings.TrimSpace(*req.StaffID) == "" {
		return fmt.Errorf("%w: staffId must not be blank", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast compares calendar days in the location of now.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
