package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// memAppointmentRepo in-memory репозиторий, повторяющий контракт хранилища:
// Create отклоняет второй активный слот на (date, startTime), как это делает
// уникальный индекс в PostgreSQL.
type memAppointmentRepo struct {
	mu        sync.Mutex
	nextID    int64
	items     []*domain.Appointment
	filterErr error
}

func (m *memAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.items {
		if existing.Status != domain.StatusCancelled &&
			existing.ServiceID == a.ServiceID &&
			existing.AppointmentDate.Equal(a.AppointmentDate) &&
			existing.StartTime == a.StartTime {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}

	m.nextID++
	created := *a
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.items = append(m.items, &created)

	out := created
	return &out, nil
}

func (m *memAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.filterErr != nil {
		return nil, m.filterErr
	}

	result := make([]*domain.Appointment, 0)
	for _, a := range m.items {
		if filter.ServiceID != nil && a.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.StartDate != nil && a.AppointmentDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && a.AppointmentDate.After(*filter.EndDate) {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	slot *domain.Schedule
	err  error
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, _ int64) (*domain.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
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

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeCalendarService struct {
	window domain.OperatingWindow
}

func (f *fakeCalendarService) ResolveDay(_ context.Context, _ time.Time) (domain.OperatingWindow, error) {
	return f.window, nil
}

// fakeTxManager выполняет функцию без реальной транзакции: уникальность
// слота при гонках обеспечивает сам репозиторий, как индекс в БД
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// commitFailTxManager выполняет функцию, но завершает транзакцию ошибкой
// уровня COMMIT - так проигравшая SERIALIZABLE-транзакция узнает о гонке
type commitFailTxManager struct {
	commitErr error
}

func (m commitFailTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("txmanager: commit transaction: %w", m.commitErr)
}

type fakeNotifier struct {
	calls atomic.Int64
}

func (f *fakeNotifier) SendAppointmentCreated(_ *domain.Appointment) error {
	f.calls.Add(1)
	return nil
}

type fakeMetrics struct {
	created   atomic.Int64
	conflicts atomic.Int64
}

func (f *fakeMetrics) IncAppointmentCreated(string) { f.created.Add(1) }
func (f *fakeMetrics) IncBookingConflict()          { f.conflicts.Add(1) }

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

var (
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
)

type testEnv struct {
	uc       *UseCase
	repo     *memAppointmentRepo
	metrics  *fakeMetrics
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := &memAppointmentRepo{}
	metrics := &fakeMetrics{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(
		repo,
		&fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		&fakeIntervalRepo{},
		&fakeCatalogClient{service: &catalogservice.Service{
			ID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25.0, IsActive: true,
		}},
		&fakeCalendarService{window: domain.OperatingWindow{
			IsOpen: true, OpenTime: "09:00", CloseTime: "18:00",
		}},
		fakeTxManager{},
		notifier,
		metrics,
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &testEnv{uc: uc, repo: repo, metrics: metrics, notifier: notifier}
}

func validRequest() *Request {
	return &Request{
		ServiceID:   1,
		Date:        testDate,
		StartTime:   "10:00",
		ClientName:  "Ivan Petrov",
		ClientEmail: "ivan@example.com",
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.NotEmpty(t, resp.ConfirmationCode)
	// Денормализованные данные услуги
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 25.0, resp.ServicePrice)

	assert.Equal(t, int64(1), env.metrics.created.Load())
}

func TestExecute_InitialStatus(t *testing.T) {
	env := newTestEnv(t)

	confirmed := string(domain.StatusConfirmed)
	req := validRequest()
	req.InitialStatus = &confirmed

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, confirmed, resp.Status)
}

func TestExecute_InvalidInitialStatus(t *testing.T) {
	env := newTestEnv(t)

	for _, status := range []string{"completed", "cancelled", "bogus"} {
		s := status
		req := validRequest()
		req.InitialStatus = &s

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
}

func TestExecute_SlotTaken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.ClientEmail = "other@example.com"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)

	assert.Equal(t, int64(1), env.metrics.conflicts.Load())
}

func TestExecute_SerializationFailureOnReadMapsToSlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.repo.filterErr = appointmentRepo.ErrSerializationFailure

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, int64(1), env.metrics.conflicts.Load())
}

func TestExecute_SerializationFailureOnCommitMapsToSlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.uc.txManager = commitFailTxManager{commitErr: &pq.Error{Code: "40001"}}

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, int64(1), env.metrics.conflicts.Load())
}

func TestExecute_OverlappingSlotTaken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Пересечение с существующей записью 10:00-10:30
	req := validRequest()
	req.StartTime = "10:15"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Касающийся слот 10:30 свободен
	req = validRequest()
	req.StartTime = "10:30"
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отменяем запись напрямую в хранилище
	env.repo.mu.Lock()
	for _, a := range env.repo.items {
		if a.ID == resp.ID {
			a.Status = domain.StatusCancelled
		}
	}
	env.repo.mu.Unlock()

	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_BlockedIntervalRejected(t *testing.T) {
	env := newTestEnv(t)
	env.uc.intervalRepo = &fakeIntervalRepo{intervals: []*domain.BlockedInterval{
		{StartTime: "10:00", EndTime: "11:00"},
	}}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	env := newTestEnv(t)

	req := validRequest()
	req.StartTime = "08:00"
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotOutsideHours)

	req = validRequest()
	req.StartTime = "17:45"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotOutsideHours)
}

func TestExecute_ClosedDay(t *testing.T) {
	env := newTestEnv(t)
	env.uc.calendarService = &fakeCalendarService{window: domain.Closed()}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotOutsideHours)
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newTestEnv(t)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InactiveService(t *testing.T) {
	env := newTestEnv(t)
	env.uc.catalogClient = &fakeCatalogClient{service: &catalogservice.Service{
		ID: 1, DurationMinutes: 30, IsActive: false,
	}}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.uc.catalogClient = &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_FromSchedule(t *testing.T) {
	env := newTestEnv(t)

	scheduleID := int64(7)
	env.uc.scheduleRepo = &fakeScheduleRepo{slot: &domain.Schedule{
		ID:          scheduleID,
		ServiceID:   1,
		Date:        testDate,
		StartTime:   "11:00",
		EndTime:     "11:30",
		IsAvailable: true,
	}}

	req := &Request{
		ServiceID:   1,
		ScheduleID:  &scheduleID,
		ClientName:  "Ivan Petrov",
		ClientEmail: "ivan@example.com",
	}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
	assert.Equal(t, &scheduleID, resp.ScheduleID)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	env := newTestEnv(t)

	scheduleID := int64(404)
	req := &Request{
		ServiceID:   1,
		ScheduleID:  &scheduleID,
		ClientName:  "Ivan Petrov",
		ClientEmail: "ivan@example.com",
	}

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_ScheduleUnavailable(t *testing.T) {
	env := newTestEnv(t)

	scheduleID := int64(7)
	env.uc.scheduleRepo = &fakeScheduleRepo{slot: &domain.Schedule{
		ID:          scheduleID,
		ServiceID:   1,
		Date:        testDate,
		StartTime:   "11:00",
		IsAvailable: false,
	}}

	req := &Request{
		ServiceID:   1,
		ScheduleID:  &scheduleID,
		ClientName:  "Ivan Petrov",
		ClientEmail: "ivan@example.com",
	}

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleUnavailable)
}

func TestExecute_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"zero service", func(r *Request) { r.ServiceID = 0 }, ErrInvalidInput},
		{"missing date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"missing start time", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"missing client name", func(r *Request) { r.ClientName = "" }, ErrInvalidInput},
		{"missing email", func(r *Request) { r.ClientEmail = "" }, ErrInvalidInput},
		{"malformed email", func(r *Request) { r.ClientEmail = "not-an-email" }, ErrInvalidInput},
		{"schedule and inline slot together", func(r *Request) {
			id := int64(5)
			r.ScheduleID = &id
		}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Гонка за один слот: из N параллельных попыток выигрывает ровно одна,
// остальные получают ErrSlotTaken без повторов.
func TestExecute_ConcurrentBookingSingleWinner(t *testing.T) {
	env := newTestEnv(t)

	const workers = 16

	var (
		wg        sync.WaitGroup
		successes atomic.Int64
		conflicts atomic.Int64
		failures  atomic.Int64
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := env.uc.Execute(context.Background(), validRequest())
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrSlotTaken):
				conflicts.Add(1)
			default:
				failures.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(1), successes.Load(), "exactly one booking must win")
	assert.Equal(t, int64(workers-1), conflicts.Load(), "all losers must get ErrSlotTaken")
	assert.Zero(t, failures.Load())
	assert.Equal(t, int64(workers-1), env.metrics.conflicts.Load())

	// В хранилище ровно одна активная запись на слот
	appointments, err := env.repo.GetWithFilter(context.Background(), domain.AppointmentsFilter{})
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}
