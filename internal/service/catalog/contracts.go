package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type BusinessRepository interface {
	List(ctx context.Context) ([]*domain.Business, error)
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

// CatalogReader is the catalog repository or the cache in front of it.
type CatalogReader interface {
	ListServices(ctx context.Context, businessID string) ([]*domain.Service, error)
	ListStaff(ctx context.Context, businessID string) ([]*domain.StaffMember, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
