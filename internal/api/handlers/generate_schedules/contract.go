package generate_schedules

import (
	"context"

	generateSchedules "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_schedules"
)

type GenerateSchedulesUseCase interface {
	Execute(ctx context.Context, req *generateSchedules.Request) (*generateSchedules.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
