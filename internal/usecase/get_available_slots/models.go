package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type Request struct {
	BusinessID string
	ServiceID  string
	StaffID    *string
	Date       time.Time
}

type Response struct {
	Date            time.Time
	BusinessID      string
	ServiceID       string
	StaffID         *string
	DurationMinutes int
	Slots           []domain.AvailableSlot
}
