package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи.
// Слот задается ЛИБО ссылкой на предгенерированный слот (ScheduleID),
// ЛИБО парой (Date, StartTime) - ровно один из вариантов.
type Request struct {
	ServiceID int64 // ID услуги

	// Вариант 1: ссылка на предгенерированный слот
	ScheduleID *int64

	// Вариант 2: дата и время напрямую
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	// Данные клиента (гостевое бронирование)
	ClientName  string
	ClientEmail string
	ClientPhone *string
	Notes       *string

	// Начальный статус: scheduled (по умолчанию), pending или confirmed.
	// Выбор - политика вызывающей стороны.
	InitialStatus *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ServiceID       int64            // ID услуги
	ScheduleID      *int64           // ID предгенерированного слота (если был)
	AppointmentDate time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	ClientName  string
	ClientEmail string
	ClientPhone *string
	Notes       *string

	// Код подтверждения для клиента
	ConfirmationCode string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
