package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetWithFilter получает записи по фильтру (услуга + дата для поиска конфликтов)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// BlockedIntervalRepository интерфейс репозитория блокировок
type BlockedIntervalRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetActiveService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// CalendarService интерфейс сервиса бизнес-календаря
type CalendarService interface {
	ResolveDay(ctx context.Context, date time.Time) (domain.OperatingWindow, error)
	GetBufferMinutes(ctx context.Context) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
