package availability_range

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SlotsProvider интерфейс получения доступных слотов на один день
type SlotsProvider interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
