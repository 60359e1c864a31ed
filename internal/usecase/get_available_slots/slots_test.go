package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func openWindow(open, close types.TimeString) domain.OperatingWindow {
	return domain.OperatingWindow{IsOpen: true, OpenTime: open, CloseTime: close}
}

func TestGenerateTimeSlots_FullDay(t *testing.T) {
	// 08:00-18:00, слоты по 30 минут без паузы: 20 слотов 08:00..17:30
	slots, err := generateTimeSlots(openWindow("08:00", "18:00"), 30, 0)
	require.NoError(t, err)

	require.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("08:00"), slots[0])
	assert.Equal(t, types.TimeString("08:30"), slots[1])
	assert.Equal(t, types.TimeString("17:30"), slots[19])
}

func TestGenerateTimeSlots_WithBuffer(t *testing.T) {
	// 10:00-12:00, слоты по 30 минут с паузой 15: 10:00, 10:45, 11:30
	slots, err := generateTimeSlots(openWindow("10:00", "12:00"), 30, 15)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "10:45", "11:30"}, slots)
}

func TestGenerateTimeSlots_BufferOnlyBetweenSlots(t *testing.T) {
	// Последний слот 11:30-12:00 заканчивается ровно в закрытие:
	// пауза после последнего слота не требуется
	slots, err := generateTimeSlots(openWindow("11:30", "12:00"), 30, 15)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"11:30"}, slots)
}

func TestGenerateTimeSlots_SlotMustFitEntirely(t *testing.T) {
	// 09:00-10:10, слоты по 30 минут: кандидат 10:00 закончился бы
	// в 10:30 и отбрасывается
	slots, err := generateTimeSlots(openWindow("09:00", "10:10"), 30, 0)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slots)

	// 10:00 помещается ровно до закрытия 10:30 и остается
	slots, err = generateTimeSlots(openWindow("09:00", "10:30"), 30, 0)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, slots)
}

func TestGenerateTimeSlots_ClosedDay(t *testing.T) {
	slots, err := generateTimeSlots(domain.Closed(), 30, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_DurationLongerThanWindow(t *testing.T) {
	slots, err := generateTimeSlots(openWindow("09:00", "09:30"), 60, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_Idempotent(t *testing.T) {
	first, err := generateTimeSlots(openWindow("08:00", "18:00"), 45, 10)
	require.NoError(t, err)

	second, err := generateTimeSlots(openWindow("08:00", "18:00"), 45, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateTimeSlots_SpacingInvariant(t *testing.T) {
	duration, buffer := 25, 5
	slots, err := generateTimeSlots(openWindow("08:00", "20:00"), duration, buffer)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// Соседние слоты разделены ровно duration + buffer минутами
	for i := 1; i < len(slots); i++ {
		prev, err := slots[i-1].Minutes()
		require.NoError(t, err)
		curr, err := slots[i].Minutes()
		require.NoError(t, err)
		assert.Equal(t, duration+buffer, curr-prev)
	}
}

func TestFilterPastSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00", "12:00"}
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("future date keeps all", func(t *testing.T) {
		now := time.Date(2025, 10, 14, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, slots, filterPastSlots(slots, date, now))
	})

	t.Run("past date drops all", func(t *testing.T) {
		now := time.Date(2025, 10, 16, 1, 0, 0, 0, time.UTC)
		assert.Empty(t, filterPastSlots(slots, date, now))
	})

	t.Run("today keeps current and future", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, []types.TimeString{"11:00", "12:00"}, filterPastSlots(slots, date, now))
	})

	t.Run("slot starting exactly now is kept", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC)
		assert.Equal(t, []types.TimeString{"11:00", "12:00"}, filterPastSlots(slots, date, now))
	})
}

func TestIsSlotFree(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusScheduled},
	}

	// Прямое совпадение занято
	assert.False(t, isSlotFree("10:00", 30, appointments, nil))
	// Частичное пересечение занято
	assert.False(t, isSlotFree("09:45", 30, appointments, nil))
	assert.False(t, isSlotFree("10:15", 30, appointments, nil))
	// Касающиеся границы свободны
	assert.True(t, isSlotFree("09:30", 30, appointments, nil))
	assert.True(t, isSlotFree("10:30", 30, appointments, nil))
}

func TestIsSlotFree_CancelledAppointmentFreesSlot(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	assert.True(t, isSlotFree("10:00", 30, appointments, nil))
}

func TestIsSlotFree_BlockedInterval(t *testing.T) {
	blocked := []*domain.BlockedInterval{
		{StartTime: "13:00", EndTime: "14:00"},
	}

	assert.False(t, isSlotFree("13:30", 30, nil, blocked))
	assert.False(t, isSlotFree("12:45", 30, nil, blocked))
	// Слот, заканчивающийся ровно в начале блокировки, свободен
	assert.True(t, isSlotFree("12:30", 30, nil, blocked))
	assert.True(t, isSlotFree("14:00", 30, nil, blocked))
}

func TestFilterAvailableSlots(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}
	appointments := []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}
	blocked := []*domain.BlockedInterval{
		{StartTime: "11:00", EndTime: "11:30"},
	}

	available := filterAvailableSlots(candidates, 30, appointments, blocked)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30"}, available)
}
