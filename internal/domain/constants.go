package domain

// Default configuration values
const (
	// DefaultBufferMinutes пауза между соседними слотами, если настройка не задана
	DefaultBufferMinutes = 15
)

// Business validation constants
const (
	MinWeekday = 0 // воскресенье
	MaxWeekday = 6 // суббота

	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	MinBufferMinutes = 0
	MaxBufferMinutes = 240

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxScheduleGenerationDays   = 92 // ~3 месяца за один запуск генерации
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Settings keys
const (
	// SettingBufferMinutes ключ настройки паузы между слотами
	SettingBufferMinutes = "appointment_buffer_minutes"
)

// ActiveStatuses статусы записей, занимающих слот
// Используются при поиске конфликтов
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы записей, освобождающих слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
