package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
)

type CalendarService interface {
	GetBufferMinutes(ctx context.Context) (int, error)
	UpdateBufferMinutes(ctx context.Context, req *models.UpdateBufferRequest) (*models.BufferResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
