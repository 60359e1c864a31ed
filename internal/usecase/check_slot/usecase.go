package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case проверки доступности конкретного слота.
// В отличие от списка доступных слотов, проверяет произвольное время начала,
// не обязательно лежащее на сетке генератора.
type UseCase struct {
	appointmentRepo AppointmentRepository
	intervalRepo    BlockedIntervalRepository
	catalogClient   CatalogServiceClient
	calendarService CalendarService
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
		logger:          logger,
	}
}

// Execute выполняет проверку доступности слота.
// Слот недоступен, если день закрыт, слот не помещается в рабочее окно,
// либо пересекается с активной записью или блокировкой.
// Результат - снимок состояния: гарантию от двойного бронирования
// дает только транзакция создания записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активную услугу из каталога; неактивная равнозначна отсутствующей
	service, err := uc.catalogClient.GetActiveService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CheckSlot: service id=%d not found or inactive", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Разрешаем бизнес-календарь
	window, err := uc.calendarService.ResolveDay(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to resolve calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve calendar: %v", ErrInternal, err)
	}

	// 4. Слот должен целиком помещаться в рабочее окно
	inWindow, err := window.Contains(req.StartTime, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to check window: %v", err)
		return nil, fmt.Errorf("%w: failed to check window: %v", ErrInternal, err)
	}
	if !inWindow {
		return uc.respond(req, false), nil
	}

	// 5. Проверяем конфликты с записями и блокировками
	free, err := uc.isSlotFree(ctx, req, service.DurationMinutes)
	if err != nil {
		return nil, err
	}

	return uc.respond(req, free), nil
}

// isSlotFree проверяет слот на пересечения с активными записями услуги
// и административными блокировками на дату
func (uc *UseCase) isSlotFree(ctx context.Context, req *Request, durationMinutes int) (bool, error) {
	slotEnd, err := req.StartTime.AddMinutes(durationMinutes)
	if err != nil {
		// Конец слота вышел за пределы суток
		return false, nil
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		ServiceID: ptr.Ptr(req.ServiceID),
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get appointments: %v", err)
		return false, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	for _, appointment := range appointments {
		if !appointment.IsActive() {
			continue
		}

		appointmentEnd, err := appointment.EndTime()
		if err != nil {
			continue
		}

		overlaps, err := types.OverlapsTime(req.StartTime, slotEnd, appointment.StartTime, appointmentEnd)
		if err != nil {
			continue
		}
		if overlaps {
			return false, nil
		}
	}

	blocked, err := uc.intervalRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get blocked intervals: %v", err)
		return false, fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
	}

	for _, interval := range blocked {
		overlaps, err := types.OverlapsTime(req.StartTime, slotEnd, interval.StartTime, interval.EndTime)
		if err != nil {
			continue
		}
		if overlaps {
			return false, nil
		}
	}

	return true, nil
}

func (uc *UseCase) respond(req *Request, available bool) *Response {
	return &Response{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Available: available,
	}
}
