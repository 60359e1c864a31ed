package create_appointment

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Слот задается либо ScheduleID, либо парой (date, startTime) - не обоими
	if req.ScheduleID != nil {
		if *req.ScheduleID <= 0 {
			return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
		}
		if !req.Date.IsZero() || !req.StartTime.IsZero() {
			return fmt.Errorf("%w: scheduleID and date/startTime are mutually exclusive", ErrInvalidInput)
		}
	} else {
		if req.Date.IsZero() {
			return fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
		if req.StartTime.IsZero() {
			return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
		}
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if req.ClientEmail == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
		return fmt.Errorf("%w: invalid clientEmail: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// resolveInitialStatus определяет начальный статус записи.
// По умолчанию scheduled; вызывающая сторона может выбрать pending
// или confirmed (гостевые потоки без шага подтверждения).
func resolveInitialStatus(req *Request) (domain.AppointmentStatus, error) {
	if req.InitialStatus == nil {
		return domain.StatusScheduled, nil
	}

	status := domain.AppointmentStatus(*req.InitialStatus)
	switch status {
	case domain.StatusScheduled, domain.StatusPending, domain.StatusConfirmed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q is not a valid initial status", ErrInvalidStatus, *req.InitialStatus)
	}
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(appointmentDate time.Time, now time.Time) error {
	if isDateInPast(appointmentDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// countOverlappingAppointments подсчитывает количество активных записей,
// пересекающихся со слотом [startTime, startTime+duration).
// Касающиеся границы пересечением не считаются.
func countOverlappingAppointments(
	startTime types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, appointment := range appointments {
		// Отмененные записи освобождают слот
		if !appointment.IsActive() {
			continue
		}

		appointmentEnd, err := appointment.EndTime()
		if err != nil {
			continue
		}

		overlaps, err := types.OverlapsTime(startTime, slotEnd, appointment.StartTime, appointmentEnd)
		if err != nil {
			continue
		}
		if overlaps {
			count++
		}
	}

	return count, nil
}

// overlapsBlockedInterval проверяет пересечение слота с блокировками на дату
func overlapsBlockedInterval(
	startTime types.TimeString,
	durationMinutes int,
	blocked []*domain.BlockedInterval,
) (bool, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, interval := range blocked {
		overlaps, err := types.OverlapsTime(startTime, slotEnd, interval.StartTime, interval.EndTime)
		if err != nil {
			continue
		}
		if overlaps {
			return true, nil
		}
	}

	return false, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
