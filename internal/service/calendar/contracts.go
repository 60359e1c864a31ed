package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BusinessHoursRepository интерфейс репозитория рабочих часов
type BusinessHoursRepository interface {
	Upsert(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error)
	GetByWeekday(ctx context.Context, weekday int) (*domain.BusinessHours, error)
	GetAll(ctx context.Context) ([]*domain.BusinessHours, error)
}

// HolidayRepository интерфейс репозитория праздничных дней
type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	FindMatching(ctx context.Context, date time.Time) (*domain.Holiday, error)
	GetAll(ctx context.Context) ([]*domain.Holiday, error)
	Delete(ctx context.Context, id int64) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetInt(ctx context.Context, key string, defaultValue int) (int, error)
	Upsert(ctx context.Context, key, value string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
