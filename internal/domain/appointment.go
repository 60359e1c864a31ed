package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked slot for a service.
// Appointments are never physically deleted: cancellation is a status change,
// which keeps history and frees the slot for new bookings.
type Appointment struct {
	ID         int64
	ServiceID  int64
	ScheduleID *int64 // ID предгенерированного слота (nil для inline-бронирований)

	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Данные клиента (гостевое бронирование, аутентификация вне ядра)
	ClientName  string
	ClientEmail string
	ClientPhone *string
	Notes       *string

	// Код подтверждения, выдаётся клиенту при создании
	ConfirmationCode string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the appointment interval
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status machine allows moving to target.
// A transition to the same status is allowed and treated as a no-op by callers.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusScheduled, StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	default:
		// completed и cancelled - терминальные статусы
		return false
	}
}

// IsValid returns true for a known status value
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	ServiceID       *int64             // Фильтр по услуге (опционально)
	ClientEmail     *string            // Фильтр по email клиента (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}
