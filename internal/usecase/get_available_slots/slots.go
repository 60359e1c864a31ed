package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// generateTimeSlots генерирует упорядоченный список кандидатов слотов на день.
// Слоты идут от открытия с шагом duration + buffer; слот попадает в список,
// только если целиком помещается до закрытия. Пауза вставляется только МЕЖДУ
// соседними слотами - не перед первым и не после последнего.
// Функция чистая: одинаковые аргументы дают одинаковый результат.
func generateTimeSlots(
	window domain.OperatingWindow,
	durationMinutes int,
	bufferMinutes int,
) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	if !window.IsOpen {
		return slots, nil
	}

	current := window.OpenTime

	for current.IsBefore(window.CloseTime) {
		// Слот должен целиком поместиться до закрытия
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Конец слота вышел за пределы суток
			break
		}
		if slotEnd.IsAfter(window.CloseTime) {
			break
		}

		slots = append(slots, current)

		next, err := current.AddMinutes(durationMinutes + bufferMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots, nil
}

// filterPastSlots убирает слоты, начинающиеся раньше текущего времени,
// если запрошенная дата - сегодня. Для будущих дат возвращает все слоты,
// для прошедших - пустой список.
func filterPastSlots(slots []types.TimeString, requestDate, now time.Time) []types.TimeString {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}
	}

	if !isSameDay(requestDate, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(currentTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// isSlotFree проверяет, что слот [start, start+duration) не пересекается
// ни с одной активной записью и ни с одной административной блокировкой.
// Касающиеся границы (конец одного интервала равен началу другого)
// пересечением не считаются.
func isSlotFree(
	start types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	blocked []*domain.BlockedInterval,
) bool {
	slotEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Конец слота не вычисляется - считаем слот занятым
		return false
	}

	for _, appointment := range appointments {
		// Отмененные записи освобождают слот
		if !appointment.IsActive() {
			continue
		}

		appointmentEnd, err := appointment.EndTime()
		if err != nil {
			continue
		}

		overlaps, err := types.OverlapsTime(start, slotEnd, appointment.StartTime, appointmentEnd)
		if err != nil {
			continue
		}
		if overlaps {
			return false
		}
	}

	for _, interval := range blocked {
		overlaps, err := types.OverlapsTime(start, slotEnd, interval.StartTime, interval.EndTime)
		if err != nil {
			continue
		}
		if overlaps {
			return false
		}
	}

	return true
}

// filterAvailableSlots применяет isSlotFree к каждому кандидату,
// сохраняя порядок
func filterAvailableSlots(
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	blocked []*domain.BlockedInterval,
) []types.TimeString {
	available := make([]types.TimeString, 0, len(candidates))

	for _, candidate := range candidates {
		if isSlotFree(candidate, durationMinutes, appointments, blocked) {
			available = append(available, candidate)
		}
	}

	return available
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
