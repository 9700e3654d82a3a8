package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	BusinessID      string         `json:"businessId"`
	ServiceID       string         `json:"serviceId"`
	StaffID         *string        `json:"staffId,omitempty"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	StaffIDs  []string `json:"staffIds"`
}

// ToUseCaseRequest parses the query. date is YYYY-MM-DD.
func ToUseCaseRequest(businessID, serviceID, staffID, date string) (*getAvailableSlots.Request, error) {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		StaffID:    ptr.NilIfEmpty(staffID),
		Date:       parsed,
	}, nil
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		staffIDs := s.StaffIDs
		if staffIDs == nil {
			staffIDs = []string{}
		}
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			StaffIDs:  staffIDs,
		})
	}
	return out
}
