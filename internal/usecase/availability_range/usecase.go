package availability_range

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// maxRangeDays предельная длина запрашиваемого диапазона
const maxRangeDays = 31

// Request модель запроса доступности за диапазон дат
type Request struct {
	ServiceID int64     // ID услуги
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// DayAvailability доступные слоты одного дня
type DayAvailability struct {
	Date  time.Time                  // Дата
	Slots []get_available_slots.Slot // Доступные слоты в порядке возрастания
}

// Response модель ответа с доступностью по дням
type Response struct {
	ServiceID int64             // ID услуги
	StartDate time.Time         // Начало диапазона
	EndDate   time.Time         // Конец диапазона
	Days      []DayAvailability // По одному элементу на каждый день диапазона
}

// UseCase use case получения доступности за диапазон дат.
// Обходит дни по порядку, переиспользуя логику одного дня.
type UseCase struct {
	slotsProvider SlotsProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotsProvider SlotsProvider, logger Logger) *UseCase {
	return &UseCase{
		slotsProvider: slotsProvider,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности за диапазон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AvailabilityRange: service=%d, range=%s..%s",
		req.ServiceID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AvailabilityRange: validation failed: %v", err)
		return nil, err
	}

	// 2. Обходим дни диапазона по порядку
	days := make([]DayAvailability, 0, maxRangeDays)
	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		dayResp, err := uc.slotsProvider.Execute(ctx, &get_available_slots.Request{
			ServiceID: req.ServiceID,
			Date:      date,
		})
		if err != nil {
			if errors.Is(err, get_available_slots.ErrServiceNotFound) {
				uc.logger.Warn("AvailabilityRange: service id=%d not found", req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("AvailabilityRange: failed to get slots for %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		days = append(days, DayAvailability{
			Date:  date,
			Slots: dayResp.Slots,
		})
	}

	uc.logger.Info("AvailabilityRange: resolved %d days for service=%d", len(days), req.ServiceID)

	return &Response{
		ServiceID: req.ServiceID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Days:      days,
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

	if req.EndDate.Sub(req.StartDate) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidRange, maxRangeDays)
	}

	return nil
}
