package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeIntervalRepo struct {
	intervals []*domain.BlockedInterval
}

func (f *fakeIntervalRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.BlockedInterval, error) {
	return f.intervals, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalogClient) GetActiveService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.service.IsActive {
		return nil, catalogservice.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeCalendarService struct {
	window domain.OperatingWindow
	buffer int
}

func (f *fakeCalendarService) ResolveDay(_ context.Context, _ time.Time) (domain.OperatingWindow, error) {
	return f.window, nil
}

func (f *fakeCalendarService) GetBufferMinutes(_ context.Context) (int, error) {
	return f.buffer, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(
	appointments []*domain.Appointment,
	blocked []*domain.BlockedInterval,
	catalog *fakeCatalogClient,
	calendar *fakeCalendarService,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		&fakeAppointmentRepo{appointments: appointments},
		&fakeIntervalRepo{intervals: blocked},
		catalog,
		calendar,
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func activeService(duration int) *fakeCatalogClient {
	return &fakeCatalogClient{service: &catalogservice.Service{
		ID:              1,
		Name:            "Haircut",
		DurationMinutes: duration,
		Price:           25.0,
		IsActive:        true,
	}}
}

var (
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) // среда
	testNow  = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
)

func TestExecute_FullOpenDay(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "08:00", CloseTime: "18:00"},
	}
	uc := newTestUseCase(nil, nil, activeService(30), calendar, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 20)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("08:30"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[19].StartTime)
	assert.Equal(t, int64(1), resp.ServiceID)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	calendar := &fakeCalendarService{window: domain.Closed()}
	uc := newTestUseCase(nil, nil, activeService(30), calendar, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_BookedSlotsExcluded(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "11:00"},
	}
	appointments := []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}
	uc := newTestUseCase(appointments, nil, activeService(30), calendar, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30"}, starts)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "10:00", CloseTime: "11:00"},
	}
	appointments := []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCancelled},
	}
	uc := newTestUseCase(appointments, nil, activeService(30), calendar, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_BlockedIntervalExcluded(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "12:00"},
	}
	blocked := []*domain.BlockedInterval{
		{StartTime: "10:00", EndTime: "11:00"},
	}
	uc := newTestUseCase(nil, blocked, activeService(60), calendar, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, starts)
}

func TestExecute_BufferAppliedBetweenSlots(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "10:00", CloseTime: "12:00"},
		buffer: 15,
	}
	uc := newTestUseCase(nil, nil, activeService(30), calendar, testNow)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"10:00", "10:45", "11:30"}, starts)
}

func TestExecute_TodayDropsPastSlots(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "12:00"},
	}
	now := time.Date(2025, 10, 15, 10, 15, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, activeService(30), calendar, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{"10:30", "11:00", "11:30"}, starts)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
	}
	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}
	uc := newTestUseCase(nil, nil, catalog, calendar, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceTreatedAsNotFound(t *testing.T) {
	calendar := &fakeCalendarService{
		window: domain.OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
	}
	catalog := &fakeCatalogClient{service: &catalogservice.Service{ID: 1, DurationMinutes: 30, IsActive: false}}
	uc := newTestUseCase(nil, nil, catalog, calendar, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidatesInput(t *testing.T) {
	calendar := &fakeCalendarService{window: domain.Closed()}
	uc := newTestUseCase(nil, nil, activeService(30), calendar, testNow)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
