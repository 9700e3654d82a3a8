package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
)

type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

type CatalogRepository interface {
	GetService(ctx context.Context, businessID, serviceID string) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID, staffID string) (*domain.StaffMember, error)
	ListStaff(ctx context.Context, businessID string) ([]*domain.StaffMember, error)
}

// CustomerRepository resolves the customer of a submission. The bool result
// reports whether a new row was inserted.
type CustomerRepository interface {
	FindOrCreate(ctx context.Context, c *domain.Customer) (*domain.Customer, bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListActiveForSlots(ctx context.Context, businessID string, staffID *string, date time.Time) ([]*domain.Appointment, error)
}

type HoursProvider interface {
	Resolve(ctx context.Context, businessID string) (*domain.BusinessHours, error)
}

// TransactionManager runs fn in a serializable transaction, retrying
// serialization failures.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	PublishAppointmentScheduled(ctx context.Context, e events.AppointmentScheduled) error
}

type Metrics interface {
	IncAppointmentsCreated()
	IncSlotConflicts()
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
