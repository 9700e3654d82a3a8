package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-AppointmentService/internal/wizard"
)

// apiAdapter exposes the HTTP client as the wizard's Catalog and Reserver.
type apiAdapter struct {
	client *bookingapi.Client
}

func (a apiAdapter) ListServices(ctx context.Context, businessID string) ([]wizard.Service, error) {
	services, err := a.client.ListServices(ctx, businessID)
	if err != nil {
		return nil, toWizardError(err)
	}
	out := make([]wizard.Service, 0, len(services))
	for _, s := range services {
		category := ""
		if s.Category != nil {
			category = *s.Category
		}
		out = append(out, wizard.Service{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price.StringFixed(2),
			Category:        category,
		})
	}
	return out, nil
}

func (a apiAdapter) ListStaff(ctx context.Context, businessID string) ([]wizard.StaffMember, error) {
	staff, err := a.client.ListStaff(ctx, businessID)
	if err != nil {
		return nil, toWizardError(err)
	}
	out := make([]wizard.StaffMember, 0, len(staff))
	for _, m := range staff {
		out = append(out, wizard.StaffMember{ID: m.ID, Name: m.Name, Specialties: m.Specialties})
	}
	return out, nil
}

func (a apiAdapter) Reserve(ctx context.Context, d wizard.Draft) (*wizard.Appointment, error) {
	appointment, err := a.client.Reserve(ctx, &bookingapi.ReserveRequest{
		BusinessID:    d.BusinessID,
		ServiceID:     d.ServiceID,
		StaffID:       optional(d.StaffID),
		Date:          d.Date,
		Time:          d.Time,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		CustomerPhone: optional(d.CustomerPhone),
		Notes:         optional(d.Notes),
	})
	if err != nil {
		return nil, toWizardError(err)
	}

	out := &wizard.Appointment{
		ID:        appointment.ID,
		Date:      appointment.Date,
		StartTime: appointment.StartTime,
		EndTime:   appointment.EndTime,
		Status:    appointment.Status,
	}
	if appointment.Service != nil {
		out.ServiceName = appointment.Service.Name
	}
	if appointment.Staff != nil {
		out.StaffName = appointment.Staff.Name
	}
	return out, nil
}

func toWizardError(err error) error {
	switch {
	case errors.Is(err, bookingapi.ErrValidation):
		return fmt.Errorf("%w: %v", wizard.ErrValidation, err)
	case errors.Is(err, bookingapi.ErrNotFound):
		return fmt.Errorf("%w: %v", wizard.ErrNotFound, err)
	case errors.Is(err, bookingapi.ErrSlotConflict):
		return fmt.Errorf("%w: %v", wizard.ErrSlotConflict, err)
	default:
		return fmt.Errorf("%w: %v", wizard.ErrTransient, err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
