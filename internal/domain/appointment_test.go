package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusConfirmed, false},
		// Переход в тот же статус разрешен (no-op на уровне сервиса)
		{StatusScheduled, StatusScheduled, true},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestAppointmentStatus_IsValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		StatusScheduled, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, s.IsValid(), "status %s", s)
	}

	assert.False(t, AppointmentStatus("unknown").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	for status, want := range map[AppointmentStatus]bool{
		StatusScheduled: true,
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCancelled: false,
	} {
		a := &Appointment{Status: status}
		assert.Equal(t, want, a.CanBeCancelled(), "status %s", status)
	}
}

func TestAppointment_EndTime(t *testing.T) {
	a := &Appointment{StartTime: "10:00", DurationMinutes: 45}

	end, err := a.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:45"), end)
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusScheduled}).IsActive())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
}

func TestOperatingWindow_Contains(t *testing.T) {
	window := OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}

	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		want     bool
	}{
		{"at open", "09:00", 30, true},
		{"mid day", "12:00", 60, true},
		{"last fitting slot", "17:30", 30, true},
		{"ends exactly at close", "17:00", 60, true},
		{"before open", "08:30", 30, false},
		{"spills past close", "17:45", 30, false},
		{"starts at close", "18:00", 30, false},
		{"crosses midnight", "23:45", 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := window.Contains(tt.start, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatingWindow_Contains_Closed(t *testing.T) {
	got, err := Closed().Contains("10:00", 30)
	require.NoError(t, err)
	assert.False(t, got)
}
