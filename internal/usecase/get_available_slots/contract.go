package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

type CatalogRepository interface {
	GetService(ctx context.Context, businessID, serviceID string) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID, staffID string) (*domain.StaffMember, error)
	ListStaff(ctx context.Context, businessID string) ([]*domain.StaffMember, error)
}

type AppointmentRepository interface {
	ListActiveForSlots(ctx context.Context, businessID string, staffID *string, date time.Time) ([]*domain.Appointment, error)
}

// HoursProvider returns the effective opening table of a business.
type HoursProvider interface {
	Resolve(ctx context.Context, businessID string) (*domain.BusinessHours, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
