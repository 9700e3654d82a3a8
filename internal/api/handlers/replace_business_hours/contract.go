package replace_business_hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

type HoursService interface {
	Replace(ctx context.Context, businessID, userID string, req *models.ReplaceHoursRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
