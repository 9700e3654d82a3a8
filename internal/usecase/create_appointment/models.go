package create_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request is a booking draft submitted by the wizard.
// Time accepts "HH:MM" and "h:mm AM/PM".
type Request struct {
	BusinessID    string  `validate:"required"`
	ServiceID     string  `validate:"required"`
	StaffID       *string `validate:"omitempty,min=1"`
	Date          string  `validate:"required,datetime=2006-01-02"`
	Time          string  `validate:"required"`
	CustomerName  string  `validate:"required,max=200"`
	CustomerEmail string  `validate:"required,email,max=254"`
	CustomerPhone *string `validate:"omitempty,max=50"`
	Notes         *string `validate:"omitempty,max=1000"`
}

type Response struct {
	Appointment     *domain.Appointment
	CustomerCreated bool
}
