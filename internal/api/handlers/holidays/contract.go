package holidays

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
)

type CalendarService interface {
	CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	ListHolidays(ctx context.Context) (*models.HolidayListResponse, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
