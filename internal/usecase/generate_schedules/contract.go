package generate_schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория предгенерированных слотов
type ScheduleRepository interface {
	// BulkCreate вставляет слоты, пропуская дубликаты; возвращает число созданных
	BulkCreate(ctx context.Context, slots []*domain.Schedule) (int64, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
