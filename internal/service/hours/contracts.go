package hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type HoursRepository interface {
	Get(ctx context.Context, businessID string) ([]domain.HoursWindow, error)
	Replace(ctx context.Context, businessID string, windows []domain.HoursWindow) error
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
