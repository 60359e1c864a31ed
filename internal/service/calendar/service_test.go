package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businesshoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/businesshours"
	holidayRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeBusinessHoursRepo struct {
	byWeekday map[int]*domain.BusinessHours
	getCalls  int
	nextID    int64
}

func newFakeBusinessHoursRepo() *fakeBusinessHoursRepo {
	return &fakeBusinessHoursRepo{byWeekday: make(map[int]*domain.BusinessHours)}
}

func (r *fakeBusinessHoursRepo) Upsert(_ context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error) {
	saved := *hours
	if existing, ok := r.byWeekday[hours.Weekday]; ok {
		saved.ID = existing.ID
	} else {
		r.nextID++
		saved.ID = r.nextID
	}
	saved.UpdatedAt = time.Now()
	r.byWeekday[hours.Weekday] = &saved
	return &saved, nil
}

func (r *fakeBusinessHoursRepo) GetByWeekday(_ context.Context, weekday int) (*domain.BusinessHours, error) {
	r.getCalls++
	hours, ok := r.byWeekday[weekday]
	if !ok {
		return nil, businesshoursRepo.ErrNotFound
	}
	return hours, nil
}

func (r *fakeBusinessHoursRepo) GetAll(_ context.Context) ([]*domain.BusinessHours, error) {
	result := make([]*domain.BusinessHours, 0, len(r.byWeekday))
	for _, hours := range r.byWeekday {
		result = append(result, hours)
	}
	return result, nil
}

type fakeHolidayRepo struct {
	holidays  []*domain.Holiday
	findCalls int
	nextID    int64
}

func (r *fakeHolidayRepo) Create(_ context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	for _, existing := range r.holidays {
		if existing.Date.Equal(holiday.Date) {
			return nil, holidayRepo.ErrDuplicateHoliday
		}
	}
	r.nextID++
	created := *holiday
	created.ID = r.nextID
	r.holidays = append(r.holidays, &created)
	return &created, nil
}

func (r *fakeHolidayRepo) FindMatching(_ context.Context, date time.Time) (*domain.Holiday, error) {
	r.findCalls++
	for _, h := range r.holidays {
		if h.Date.Year() == date.Year() && h.Date.Month() == date.Month() && h.Date.Day() == date.Day() {
			return h, nil
		}
		if h.IsRecurring && h.Date.Month() == date.Month() && h.Date.Day() == date.Day() {
			return h, nil
		}
	}
	return nil, holidayRepo.ErrHolidayNotFound
}

func (r *fakeHolidayRepo) GetAll(_ context.Context) ([]*domain.Holiday, error) {
	return r.holidays, nil
}

func (r *fakeHolidayRepo) Delete(_ context.Context, id int64) error {
	for i, h := range r.holidays {
		if h.ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return nil
		}
	}
	return holidayRepo.ErrHolidayNotFound
}

type fakeSettingsRepo struct {
	intValues map[string]int
	upserted  map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		intValues: make(map[string]int),
		upserted:  make(map[string]string),
	}
}

func (r *fakeSettingsRepo) GetInt(_ context.Context, key string, defaultValue int) (int, error) {
	if v, ok := r.intValues[key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, key, value string) error {
	r.upserted[key] = value
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	svc      *Service
	hours    *fakeBusinessHoursRepo
	holidays *fakeHolidayRepo
	settings *fakeSettingsRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		hours:    newFakeBusinessHoursRepo(),
		holidays: &fakeHolidayRepo{},
		settings: newFakeSettingsRepo(),
	}
	env.svc = NewService(env.hours, env.holidays, env.settings, noopLogger{})
	return env
}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

// seedOpenDay настраивает рабочие часы 09:00-18:00 для дня недели указанной даты.
func (env *testEnv) seedOpenDay(t *testing.T, date time.Time) {
	t.Helper()
	env.hours.byWeekday[int(date.Weekday())] = &domain.BusinessHours{
		ID:        1,
		Weekday:   int(date.Weekday()),
		OpenTime:  mustTime(t, "09:00"),
		CloseTime: mustTime(t, "18:00"),
		IsActive:  true,
	}
}

// testDate среда
var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func TestResolveDay_OpenDay(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)

	window, err := env.svc.ResolveDay(context.Background(), testDate)

	require.NoError(t, err)
	assert.True(t, window.IsOpen)
	assert.Equal(t, "09:00", window.OpenTime.String())
	assert.Equal(t, "18:00", window.CloseTime.String())
}

func TestResolveDay_HolidayClosesDay(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)
	env.holidays.holidays = append(env.holidays.holidays, &domain.Holiday{
		ID:   1,
		Date: testDate,
		Name: "Городской праздник",
	})

	window, err := env.svc.ResolveDay(context.Background(), testDate)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
}

func TestResolveDay_RecurringHolidayMatchesByMonthAndDay(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)
	env.holidays.holidays = append(env.holidays.holidays, &domain.Holiday{
		ID:          1,
		Date:        time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC),
		Name:        "Ежегодный выходной",
		IsRecurring: true,
	})

	window, err := env.svc.ResolveDay(context.Background(), testDate)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
}

func TestResolveDay_NoBusinessHoursMeansClosed(t *testing.T) {
	env := newTestEnv()

	window, err := env.svc.ResolveDay(context.Background(), testDate)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
}

func TestResolveDay_InactiveHoursMeansClosed(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)
	env.hours.byWeekday[int(testDate.Weekday())].IsActive = false

	window, err := env.svc.ResolveDay(context.Background(), testDate)

	require.NoError(t, err)
	assert.False(t, window.IsOpen)
}

func TestResolveDay_ResultIsCached(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)

	_, err := env.svc.ResolveDay(context.Background(), testDate)
	require.NoError(t, err)
	_, err = env.svc.ResolveDay(context.Background(), testDate)
	require.NoError(t, err)

	assert.Equal(t, 1, env.holidays.findCalls)
	assert.Equal(t, 1, env.hours.getCalls)
}

func TestResolveDay_ClosedDayIsCachedToo(t *testing.T) {
	env := newTestEnv()

	for i := 0; i < 3; i++ {
		window, err := env.svc.ResolveDay(context.Background(), testDate)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	}

	assert.Equal(t, 1, env.hours.getCalls)
}

func TestUpsertBusinessHours_FlushesResolveCache(t *testing.T) {
	env := newTestEnv()

	window, err := env.svc.ResolveDay(context.Background(), testDate)
	require.NoError(t, err)
	require.False(t, window.IsOpen)

	_, err = env.svc.UpsertBusinessHours(context.Background(), &models.UpsertBusinessHoursRequest{
		Weekday:   int(testDate.Weekday()),
		OpenTime:  "10:00",
		CloseTime: "16:00",
		IsActive:  true,
	})
	require.NoError(t, err)

	window, err = env.svc.ResolveDay(context.Background(), testDate)
	require.NoError(t, err)
	assert.True(t, window.IsOpen)
	assert.Equal(t, "10:00", window.OpenTime.String())
}

func TestUpsertBusinessHours_Validation(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		req  models.UpsertBusinessHoursRequest
	}{
		{
			name: "weekday below range",
			req:  models.UpsertBusinessHoursRequest{Weekday: -1, OpenTime: "09:00", CloseTime: "18:00", IsActive: true},
		},
		{
			name: "weekday above range",
			req:  models.UpsertBusinessHoursRequest{Weekday: 7, OpenTime: "09:00", CloseTime: "18:00", IsActive: true},
		},
		{
			name: "malformed open time",
			req:  models.UpsertBusinessHoursRequest{Weekday: 1, OpenTime: "9 утра", CloseTime: "18:00", IsActive: true},
		},
		{
			name: "open equals close",
			req:  models.UpsertBusinessHoursRequest{Weekday: 1, OpenTime: "09:00", CloseTime: "09:00", IsActive: true},
		},
		{
			name: "open after close",
			req:  models.UpsertBusinessHoursRequest{Weekday: 1, OpenTime: "18:00", CloseTime: "09:00", IsActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.svc.UpsertBusinessHours(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Nil(t, resp)
		})
	}
}

func TestUpsertBusinessHours_UpdateKeepsID(t *testing.T) {
	env := newTestEnv()

	first, err := env.svc.UpsertBusinessHours(context.Background(), &models.UpsertBusinessHoursRequest{
		Weekday: 1, OpenTime: "09:00", CloseTime: "18:00", IsActive: true,
	})
	require.NoError(t, err)

	second, err := env.svc.UpsertBusinessHours(context.Background(), &models.UpsertBusinessHoursRequest{
		Weekday: 1, OpenTime: "10:00", CloseTime: "19:00", IsActive: true,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "10:00", second.OpenTime)
}

func TestListBusinessHours(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)

	resp, err := env.svc.ListBusinessHours(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.BusinessHours, 1)
	assert.Equal(t, int(testDate.Weekday()), resp.BusinessHours[0].Weekday)
}

func TestGetBufferMinutes_DefaultWhenUnset(t *testing.T) {
	env := newTestEnv()

	buffer, err := env.svc.GetBufferMinutes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBufferMinutes, buffer)
}

func TestGetBufferMinutes_ReturnsStoredValue(t *testing.T) {
	env := newTestEnv()
	env.settings.intValues[domain.SettingBufferMinutes] = 30

	buffer, err := env.svc.GetBufferMinutes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 30, buffer)
}

func TestUpdateBufferMinutes(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.UpdateBufferMinutes(context.Background(), &models.UpdateBufferRequest{BufferMinutes: 45})

	require.NoError(t, err)
	assert.Equal(t, 45, resp.BufferMinutes)
	assert.Equal(t, "45", env.settings.upserted[domain.SettingBufferMinutes])
}

func TestUpdateBufferMinutes_OutOfRange(t *testing.T) {
	env := newTestEnv()

	for _, minutes := range []int{domain.MinBufferMinutes - 1, domain.MaxBufferMinutes + 1} {
		resp, err := env.svc.UpdateBufferMinutes(context.Background(), &models.UpdateBufferRequest{BufferMinutes: minutes})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Nil(t, resp)
	}
}

func TestCreateHoliday(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.CreateHoliday(context.Background(), &models.CreateHolidayRequest{
		Date: "2025-12-31",
		Name: "Новый год",
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "2025-12-31", resp.Date)
	assert.Equal(t, "Новый год", resp.Name)
}

func TestCreateHoliday_FlushesResolveCache(t *testing.T) {
	env := newTestEnv()
	env.seedOpenDay(t, testDate)

	window, err := env.svc.ResolveDay(context.Background(), testDate)
	require.NoError(t, err)
	require.True(t, window.IsOpen)

	_, err = env.svc.CreateHoliday(context.Background(), &models.CreateHolidayRequest{
		Date: testDate.Format(domain.DateFormat),
		Name: "Санитарный день",
	})
	require.NoError(t, err)

	window, err = env.svc.ResolveDay(context.Background(), testDate)
	require.NoError(t, err)
	assert.False(t, window.IsOpen)
}

func TestCreateHoliday_Duplicate(t *testing.T) {
	env := newTestEnv()

	req := &models.CreateHolidayRequest{Date: "2025-12-31", Name: "Новый год"}
	_, err := env.svc.CreateHoliday(context.Background(), req)
	require.NoError(t, err)

	resp, err := env.svc.CreateHoliday(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateHoliday))
	assert.Nil(t, resp)
}

func TestCreateHoliday_Validation(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		req  models.CreateHolidayRequest
	}{
		{name: "malformed date", req: models.CreateHolidayRequest{Date: "31.12.2025", Name: "Новый год"}},
		{name: "empty name", req: models.CreateHolidayRequest{Date: "2025-12-31", Name: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.svc.CreateHoliday(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Nil(t, resp)
		})
	}
}

func TestListHolidays(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.CreateHoliday(context.Background(), &models.CreateHolidayRequest{
		Date: "2025-12-31",
		Name: "Новый год",
	})
	require.NoError(t, err)

	resp, err := env.svc.ListHolidays(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Holidays, 1)
	assert.Equal(t, "Новый год", resp.Holidays[0].Name)
}

func TestDeleteHoliday(t *testing.T) {
	env := newTestEnv()
	created, err := env.svc.CreateHoliday(context.Background(), &models.CreateHolidayRequest{
		Date: "2025-12-31",
		Name: "Новый год",
	})
	require.NoError(t, err)

	err = env.svc.DeleteHoliday(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Empty(t, env.holidays.holidays)
}

func TestDeleteHoliday_NotFound(t *testing.T) {
	env := newTestEnv()

	err := env.svc.DeleteHoliday(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHolidayNotFound))
}
