package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BlockedIntervalRepository интерфейс репозитория блокировок
type BlockedIntervalRepository interface {
	Create(ctx context.Context, interval *domain.BlockedInterval) (*domain.BlockedInterval, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error)
	DeleteByDateAndStart(ctx context.Context, date time.Time, startTime types.TimeString) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
