// Package events publishes appointment lifecycle events to Kafka.
package events

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const TypeAppointmentScheduled = "appointment.scheduled"

// AppointmentScheduled is emitted once an appointment is committed.
// Consumers send the confirmation e-mail from it.
type AppointmentScheduled struct {
	EventID       string    `json:"eventId"`
	AppointmentID string    `json:"appointmentId"`
	BusinessID    string    `json:"businessId"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	StaffID       *string   `json:"staffId,omitempty"`
	ServiceID     *string   `json:"serviceId,omitempty"`
	ServiceName   string    `json:"serviceName,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	StartsAt      time.Time `json:"startsAt"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewAppointmentScheduled builds the event from a joined appointment.
func NewAppointmentScheduled(eventID string, a *domain.Appointment, occurredAt time.Time) AppointmentScheduled {
	e := AppointmentScheduled{
		EventID:       eventID,
		AppointmentID: a.ID,
		BusinessID:    a.BusinessID,
		CustomerID:    a.CustomerID,
		StaffID:       a.StaffID,
		ServiceID:     a.ServiceID,
		Date:          a.Date.Format(domain.DateFormat),
		StartTime:     a.StartTime.String(),
		EndTime:       a.EndTime.String(),
		OccurredAt:    occurredAt.UTC(),
	}
	if startsAt, err := a.StartTime.On(a.Date); err == nil {
		e.StartsAt = startsAt.UTC()
	}
	if a.Customer != nil {
		e.CustomerName = a.Customer.Name
		if a.Customer.Email != nil {
			e.CustomerEmail = *a.Customer.Email
		}
	}
	if a.Service != nil {
		e.ServiceName = a.Service.Name
	}
	return e
}
