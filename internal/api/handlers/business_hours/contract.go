package business_hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
)

type CalendarService interface {
	UpsertBusinessHours(ctx context.Context, req *models.UpsertBusinessHoursRequest) (*models.BusinessHoursResponse, error)
	ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
