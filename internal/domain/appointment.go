package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// IsValid reports whether s is a known status.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether an appointment in this status occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StaffRef and ServiceRef are the joined views returned with an appointment.
type StaffRef struct {
	ID   string
	Name string
}

type ServiceRef struct {
	ID              string
	Name            string
	DurationMinutes int
}

// Appointment is a reservation of a staff member's time for a service.
// Date carries only the calendar day; StartTime and EndTime are times of day.
type Appointment struct {
	ID         string
	BusinessID string
	CustomerID string
	StaffID    *string
	ServiceID  *string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     AppointmentStatus
	Notes      *string

	Customer *Customer
	Staff    *StaffRef
	Service  *ServiceRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// Overlaps reports whether the appointment intersects [start, end).
// Touching intervals do not overlap.
func (a *Appointment) Overlaps(start, end types.TimeString) bool {
	return a.StartTime.IsBefore(end) && a.EndTime.IsAfter(start)
}

// AppointmentsFilter selects appointments of one business.
type AppointmentsFilter struct {
	BusinessID      string
	Date            *time.Time
	StaffID         *string
	IncludeInactive bool
}
