package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type ListAppointmentsRequest struct {
	BusinessID      string
	UserID          string
	Date            *time.Time
	StaffID         *string
	IncludeInactive bool
}

func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		BusinessID:      r.BusinessID,
		Date:            r.Date,
		StaffID:         r.StaffID,
		IncludeInactive: r.IncludeInactive,
	}
}

type UpdateStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status"`
}

type CustomerResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AppointmentResponse is the public representation of an appointment.
// Date is "2006-01-02", times are "HH:MM".
type AppointmentResponse struct {
	ID         string            `json:"id"`
	BusinessID string            `json:"businessId"`
	Customer   *CustomerResponse `json:"customer,omitempty"`
	Staff      *StaffResponse    `json:"staff,omitempty"`
	Service    *ServiceResponse  `json:"service,omitempty"`
	Date       string            `json:"date"`
	StartTime  string            `json:"startTime"`
	EndTime    string            `json:"endTime"`
	Status     string            `json:"status"`
	Notes      *string           `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		Date:       a.Date.Format(domain.DateFormat),
		StartTime:  a.StartTime.String(),
		EndTime:    a.EndTime.String(),
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.Customer != nil {
		resp.Customer = &CustomerResponse{
			ID:    a.CustomerID,
			Name:  a.Customer.Name,
			Email: a.Customer.Email,
			Phone: a.Customer.Phone,
		}
	}
	if a.Staff != nil {
		resp.Staff = &StaffResponse{ID: a.Staff.ID, Name: a.Staff.Name}
	}
	if a.Service != nil {
		resp.Service = &ServiceResponse{
			ID:              a.Service.ID,
			Name:            a.Service.Name,
			DurationMinutes: a.Service.DurationMinutes,
		}
	}
	return resp
}

func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	return resp
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

func FromDomainCustomerList(customers []*domain.Customer) *CustomerListResponse {
	resp := &CustomerListResponse{
		Customers: make([]CustomerResponse, 0, len(customers)),
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, CustomerResponse{
			ID:    c.ID,
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
		})
	}
	return resp
}
