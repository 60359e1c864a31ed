package availability_range

import (
	"context"

	availabilityRange "github.com/m04kA/SMC-AppointmentService/internal/usecase/availability_range"
)

type AvailabilityRangeUseCase interface {
	Execute(ctx context.Context, req *availabilityRange.Request) (*availabilityRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
