package create_appointment

import (
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model.
// time accepts "HH:MM" and "h:mm AM/PM".
type CreateAppointmentRequest struct {
	BusinessID    string  `json:"businessId"`
	ServiceID     string  `json:"serviceId"`
	StaffID       *string `json:"staffId,omitempty"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		Date:          r.Date,
		Time:          r.Time,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}
}
