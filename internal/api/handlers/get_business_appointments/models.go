package get_business_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// ToServiceRequest parses ?date=YYYY-MM-DD&staffId=&includeInactive=true.
func ToServiceRequest(businessID, userID string, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		BusinessID: businessID,
		UserID:     userID,
		StaffID:    ptr.NilIfEmpty(query.Get("staffId")),
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}

	if raw := query.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
		req.IncludeInactive = include
	}
	return req, nil
}
