package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case создания записи - единственная мутирующая точка входа
// движка бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	intervalRepo    BlockedIntervalRepository
	catalogClient   CatalogServiceClient
	calendarService CalendarService
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	intervalRepo BlockedIntervalRepository,
	catalogClient CatalogServiceClient,
	calendarService CalendarService,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		intervalRepo:    intervalRepo,
		catalogClient:   catalogClient,
		calendarService: calendarService,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Предварительные проверки (услуга, календарь) идут fail-fast до транзакции.
// Проверка конфликтов выполняется ВНУТРИ сериализуемой транзакции вместе
// со вставкой - чтение доступности до вызова не дает никаких гарантий.
// Страховкой от гонки двух одинаковых вставок служит уникальный индекс
// на (service_id, date, start_time) по неотмененным записям: проигравшая
// транзакция получает ErrSlotTaken, повторов не делается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%d, schedule=%v, date=%s, time=%s, client=%s",
		req.ServiceID, req.ScheduleID, req.Date.Format(domain.DateFormat), req.StartTime, req.ClientEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем начальный статус
	initialStatus, err := resolveInitialStatus(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 3. Получаем услугу из каталога и проверяем активность
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 4. Разрешаем слот: предгенерированный или inline
	date := req.Date
	startTime := req.StartTime
	if req.ScheduleID != nil {
		slot, err := uc.scheduleRepo.GetByID(ctx, *req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateAppointment: schedule id=%d not found", *req.ScheduleID)
				return nil, ErrScheduleNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get schedule id=%d: %v", *req.ScheduleID, err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		if slot.ServiceID != req.ServiceID || !slot.IsAvailable {
			uc.logger.Warn("CreateAppointment: schedule id=%d is unavailable for service id=%d",
				*req.ScheduleID, req.ServiceID)
			return nil, ErrScheduleUnavailable
		}

		date = slot.Date
		startTime = slot.StartTime
	}

	// 5. Дата не должна быть в прошлом
	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 6. Слот должен целиком помещаться в рабочее окно
	window, err := uc.calendarService.ResolveDay(ctx, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve calendar: %v", ErrInternal, err)
	}

	inWindow, err := window.Contains(startTime, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check window: %v", err)
		return nil, fmt.Errorf("%w: failed to check window: %v", ErrInternal, err)
	}
	if !inWindow {
		uc.logger.Warn("CreateAppointment: slot %s on %s is outside business hours",
			startTime, date.Format(domain.DateFormat))
		return nil, ErrSlotOutsideHours
	}

	var result *domain.Appointment

	// 7. Проверка конфликтов и вставка - в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем записи услуги на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetWithFilter(txCtx, domain.AppointmentsFilter{
			ServiceID: ptr.Ptr(req.ServiceID),
			StartDate: ptr.Ptr(date),
			EndDate:   ptr.Ptr(date),
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSerializationFailure) {
				uc.logger.Warn("CreateAppointment: lost serialization race for slot %s on %s",
					startTime, date.Format(domain.DateFormat))
				return fmt.Errorf("%w: %v", ErrSlotTaken, err)
			}
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.2. Конфликт с существующей записью
		overlapping, err := countOverlappingAppointments(startTime, service.DurationMinutes, appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			uc.logger.Warn("CreateAppointment: slot %s on %s overlaps %d appointment(s)",
				startTime, date.Format(domain.DateFormat), overlapping)
			return ErrSlotTaken
		}

		// 7.3. Конфликт с административной блокировкой
		blocked, err := uc.intervalRepo.GetByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blocked intervals: %v", err)
			return fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
		}

		isBlocked, err := overlapsBlockedInterval(startTime, service.DurationMinutes, blocked)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check blocked intervals: %v", err)
			return fmt.Errorf("%w: failed to check blocked intervals: %v", ErrInternal, err)
		}
		if isBlocked {
			uc.logger.Warn("CreateAppointment: slot %s on %s overlaps a blocked interval",
				startTime, date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 7.4. Вставляем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ServiceID:        req.ServiceID,
			ScheduleID:       req.ScheduleID,
			AppointmentDate:  date,
			StartTime:        startTime,
			DurationMinutes:  service.DurationMinutes,
			Status:           initialStatus,
			ClientName:       req.ClientName,
			ClientEmail:      req.ClientEmail,
			ClientPhone:      req.ClientPhone,
			Notes:            req.Notes,
			ConfirmationCode: uuid.New().String(),
			ServiceName:      service.Name,
			ServicePrice:     service.Price,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			// Уникальный индекс или проигрыш SERIALIZABLE:
			// параллельная транзакция успела раньше
			if errors.Is(err, appointmentRepo.ErrSlotTaken) ||
				errors.Is(err, appointmentRepo.ErrSerializationFailure) {
				uc.logger.Warn("CreateAppointment: slot %s on %s was claimed concurrently",
					startTime, date.Format(domain.DateFormat))
				return fmt.Errorf("%w: %v", ErrSlotTaken, err)
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигравшая SERIALIZABLE-транзакция падает с 40001 - чаще всего
		// на COMMIT. Для клиента это занятый слот, повторов нет.
		if appointmentRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: transaction lost serialization race for slot %s on %s",
				startTime, date.Format(domain.DateFormat))
			err = fmt.Errorf("%w: %v", ErrSlotTaken, err)
		}
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.metrics.IncAppointmentCreated(string(result.Status))
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, code=%s",
		result.ID, result.ConfirmationCode)

	// 8. Уведомление - fire-and-forget, не блокирует и не роняет бронирование
	go func(appointment domain.Appointment) {
		if err := uc.notifier.SendAppointmentCreated(&appointment); err != nil {
			uc.logger.Warn("CreateAppointment: notification failed for appointment id=%d: %v",
				appointment.ID, err)
		}
	}(*result)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:               result.ID,
		ServiceID:        result.ServiceID,
		ScheduleID:       result.ScheduleID,
		AppointmentDate:  result.AppointmentDate,
		StartTime:        result.StartTime,
		EndTime:          endTime,
		DurationMinutes:  result.DurationMinutes,
		Status:           string(result.Status),
		ClientName:       result.ClientName,
		ClientEmail:      result.ClientEmail,
		ClientPhone:      result.ClientPhone,
		Notes:            result.Notes,
		ConfirmationCode: result.ConfirmationCode,
		ServiceName:      result.ServiceName,
		ServicePrice:     result.ServicePrice,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}
