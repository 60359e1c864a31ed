package generate_schedules

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

// memScheduleRepo накапливает слоты и пропускает дубликаты,
// как ON CONFLICT DO NOTHING
type memScheduleRepo struct {
	slots map[string]*domain.Schedule
}

func newMemScheduleRepo() *memScheduleRepo {
	return &memScheduleRepo{slots: make(map[string]*domain.Schedule)}
}

func (m *memScheduleRepo) BulkCreate(_ context.Context, slots []*domain.Schedule) (int64, error) {
	var created int64
	for _, slot := range slots {
		key := slot.Date.Format(domain.DateFormat) + "/" + slot.StartTime.String()
		if _, exists := m.slots[key]; exists {
			continue
		}
		m.slots[key] = slot
		created++
	}
	return created, nil
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

// fakeCalendarService открыт по будням с 09:00 до 12:00
type fakeCalendarService struct {
	buffer int
}

func (f *fakeCalendarService) ResolveDay(_ context.Context, date time.Time) (domain.OperatingWindow, error) {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return domain.Closed(), nil
	}
	return domain.OperatingWindow{IsOpen: true, OpenTime: "09:00", CloseTime: "12:00"}, nil
}

func (f *fakeCalendarService) GetBufferMinutes(_ context.Context) (int, error) {
	return f.buffer, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *memScheduleRepo) *UseCase {
	return NewUseCase(
		repo,
		&fakeCatalogClient{service: &catalogservice.Service{
			ID: 1, Name: "Haircut", DurationMinutes: 60, IsActive: true,
		}},
		&fakeCalendarService{},
		noopLogger{},
	)
}

func TestExecute_GeneratesGridForOpenDays(t *testing.T) {
	repo := newMemScheduleRepo()
	uc := newTestUseCase(repo)

	// Понедельник 2025-10-13 .. воскресенье 2025-10-19: 5 рабочих дней
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		StartDate: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 09:00-12:00 по 60 минут: 3 слота в день, 5 открытых дней
	assert.Equal(t, 7, resp.Days)
	assert.Equal(t, int64(15), resp.Generated)
	assert.Zero(t, resp.Skipped)
	assert.Len(t, repo.slots, 15)

	monday := repo.slots["2025-10-13/09:00"]
	require.NotNil(t, monday)
	assert.Equal(t, types.TimeString("10:00"), monday.EndTime)
	assert.True(t, monday.IsAvailable)
}

func TestExecute_RerunSkipsExisting(t *testing.T) {
	repo := newMemScheduleRepo()
	uc := newTestUseCase(repo)

	req := &Request{
		ServiceID: 1,
		StartDate: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(15), first.Generated)

	// Повторный запуск идемпотентен: все слоты уже существуют
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, second.Generated)
	assert.Equal(t, int64(15), second.Skipped)
	assert.Len(t, repo.slots, 15)
}

func TestExecute_RangeTooLong(t *testing.T) {
	uc := newTestUseCase(newMemScheduleRepo())

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, domain.MaxScheduleGenerationDays+1),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_InactiveService(t *testing.T) {
	uc := newTestUseCase(newMemScheduleRepo())
	uc.catalogClient = &fakeCatalogClient{service: &catalogservice.Service{
		ID: 1, DurationMinutes: 60, IsActive: false,
	}}

	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, StartDate: date, EndDate: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(newMemScheduleRepo())
	uc.catalogClient = &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}

	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, StartDate: date, EndDate: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
