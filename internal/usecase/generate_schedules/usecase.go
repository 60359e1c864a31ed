package generate_schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// Request модель запроса на генерацию слотов расписания
type Request struct {
	ServiceID int64     // ID услуги
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// Response модель ответа с результатом генерации
type Response struct {
	ServiceID int64 // ID услуги
	Days      int   // Количество обработанных дней
	Generated int64 // Количество созданных слотов
	Skipped   int64 // Количество пропущенных (уже существовали)
}

// UseCase use case предгенерации слотов расписания.
// Материализует ту же сетку кандидатов, что выдает расчет на лету:
// рабочее окно, длительность услуги, пауза между слотами.
// Повторный запуск идемпотентен - существующие слоты пропускаются.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
	calendarService CalendarService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	calendarService CalendarService,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		calendarService: calendarService,
		logger:          logger,
	}
}

// Execute выполняет генерацию слотов расписания за диапазон дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSchedules: service=%d, range=%s..%s",
		req.ServiceID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSchedules: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активную услугу из каталога; неактивная равнозначна отсутствующей
	service, err := uc.catalogClient.GetActiveService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GenerateSchedules: service id=%d not found or inactive", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GenerateSchedules: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Получаем паузу между слотами
	bufferMinutes, err := uc.calendarService.GetBufferMinutes(ctx)
	if err != nil {
		uc.logger.Error("GenerateSchedules: failed to get buffer: %v", err)
		return nil, fmt.Errorf("%w: failed to get buffer: %v", ErrInternal, err)
	}

	// 4. Собираем сетку кандидатов по всем дням диапазона
	slots := make([]*domain.Schedule, 0)
	days := 0

	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		days++

		window, err := uc.calendarService.ResolveDay(ctx, date)
		if err != nil {
			uc.logger.Error("GenerateSchedules: failed to resolve calendar for %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to resolve calendar: %v", ErrInternal, err)
		}

		if !window.IsOpen {
			continue
		}

		current := window.OpenTime
		for current.IsBefore(window.CloseTime) {
			slotEnd, err := current.AddMinutes(service.DurationMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(window.CloseTime) {
				break
			}

			slots = append(slots, &domain.Schedule{
				ServiceID:   req.ServiceID,
				Date:        date,
				StartTime:   current,
				EndTime:     slotEnd,
				IsAvailable: true,
			})

			next, err := current.AddMinutes(service.DurationMinutes + bufferMinutes)
			if err != nil {
				break
			}
			current = next
		}
	}

	// 5. Вставляем пачкой, пропуская уже существующие слоты
	created, err := uc.scheduleRepo.BulkCreate(ctx, slots)
	if err != nil {
		uc.logger.Error("GenerateSchedules: failed to bulk create slots: %v", err)
		return nil, fmt.Errorf("%w: failed to bulk create slots: %v", ErrInternal, err)
	}

	skipped := int64(len(slots)) - created

	uc.logger.Info("GenerateSchedules: service=%d, days=%d, generated=%d, skipped=%d",
		req.ServiceID, days, created, skipped)

	return &Response{
		ServiceID: req.ServiceID,
		Days:      days,
		Generated: created,
		Skipped:   skipped,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidRange)
	}

	if req.EndDate.Sub(req.StartDate) > domain.MaxScheduleGenerationDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days",
			ErrInvalidRange, domain.MaxScheduleGenerationDays)
	}

	return nil
}
