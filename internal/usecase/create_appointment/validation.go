package create_appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// draft is a request after parsing.
type draft struct {
	date      time.Time
	startTime types.TimeString
}

// normalize trims every text field so blank input fails the required rules.
func normalize(req *Request) {
	req.BusinessID = strings.TrimSpace(req.BusinessID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if req.StaffID != nil {
		req.StaffID = ptr.NilIfEmpty(strings.TrimSpace(*req.StaffID))
	}
	if req.CustomerPhone != nil {
		req.CustomerPhone = ptr.NilIfEmpty(strings.TrimSpace(*req.CustomerPhone))
	}
	if req.Notes != nil {
		req.Notes = ptr.NilIfEmpty(strings.TrimSpace(*req.Notes))
	}
}

func validateRequest(req *Request) (*draft, error) {
	normalize(req)

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, fmt.Errorf("%w: %s failed on '%s'", ErrInvalidInput, fe.Field(), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %w", ErrInvalidInput, err)
	}
	start, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, req.Time)
	}
	return &draft{date: date, startTime: start}, nil
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

func hasOverlap(appointments []*domain.Appointment, staffID string, start, end types.TimeString) bool {
	for _, a := range appointments {
		if a.StaffID == nil || *a.StaffID != staffID || !a.IsActive() {
			continue
		}
		if a.Overlaps(start, end) {
			return true
		}
	}
	return false
}
