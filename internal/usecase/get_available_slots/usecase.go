package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	intervalRepo    BlockedIntervalRepository
	catalogClient   CatalogServiceClient
	calendarService CalendarService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	intervalRepo BlockedIntervalRepository,
	catalogClient CatalogServiceClient,
	calendarService CalendarService,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		intervalRepo:    intervalRepo,
		catalogClient:   catalogClient,
		calendarService: calendarService,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Порядок: календарь -> генерация кандидатов -> фильтрация по конфликтам.
// Результат отражает снимок состояния: к моменту последующего бронирования
// слот может быть уже занят - корректность гарантирует транзакция записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активную услугу из каталога; неактивная равнозначна отсутствующей
	service, err := uc.catalogClient.GetActiveService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found or inactive", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Разрешаем бизнес-календарь: праздники и рабочие часы
	window, err := uc.calendarService.ResolveDay(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve calendar: %v", ErrInternal, err)
	}

	if !window.IsOpen {
		uc.logger.Info("GetAvailableSlots: closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			ServiceID: req.ServiceID,
			Slots:     []Slot{},
		}, nil
	}

	// 4. Получаем паузу между слотами
	bufferMinutes, err := uc.calendarService.GetBufferMinutes(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get buffer: %v", err)
		return nil, fmt.Errorf("%w: failed to get buffer: %v", ErrInternal, err)
	}

	// 5. Генерируем кандидатов слотов
	candidates, err := generateTimeSlots(window, service.DurationMinutes, bufferMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 6. Отбрасываем прошедшие слоты, если дата - сегодня
	candidates = filterPastSlots(candidates, req.Date, uc.timeProvider.Now())

	// 7. Получаем активные записи услуги на эту дату
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		ServiceID: ptr.Ptr(req.ServiceID),
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Получаем административные блокировки на дату
	blocked, err := uc.intervalRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
	}

	// 9. Фильтруем кандидатов по конфликтам, сохраняя порядок
	available := filterAvailableSlots(candidates, service.DurationMinutes, appointments, blocked)

	slots := make([]Slot, 0, len(available))
	for _, start := range available {
		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			continue
		}
		slots = append(slots, Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: service.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d available slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
