package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	blockedintervalRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/blockedinterval"
	"github.com/m04kA/SMC-AppointmentService/internal/service/blocks/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис административных блокировок времени
type Service struct {
	intervalRepo BlockedIntervalRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(intervalRepo BlockedIntervalRepository, logger Logger) *Service {
	return &Service{
		intervalRepo: intervalRepo,
		logger:       logger,
	}
}

// Block блокирует интервал времени на дату.
// Заблокированный интервал исключается из доступных слотов, но не трогает
// уже существующие записи.
func (s *Service) Block(ctx context.Context, req *models.BlockIntervalRequest) (*models.BlockedIntervalResponse, error) {
	s.logger.Info("Block: date=%s, start=%s, end=%s", req.Date, req.StartTime, req.EndTime)

	// 1. Валидируем входные данные
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("Block: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("Block: invalid startTime=%s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		s.logger.Warn("Block: invalid endTime=%s: %v", req.EndTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		s.logger.Warn("Block: startTime=%s is not before endTime=%s", req.StartTime, req.EndTime)
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	// 2. Создаем блокировку
	created, err := s.intervalRepo.Create(ctx, &domain.BlockedInterval{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("Block: repository error: %v", err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: created blocked interval id=%d", created.ID)
	return models.FromDomainBlockedInterval(created), nil
}

// Unblock снимает блокировку по дате и времени начала
func (s *Service) Unblock(ctx context.Context, req *models.UnblockIntervalRequest) error {
	s.logger.Info("Unblock: date=%s, start=%s", req.Date, req.StartTime)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("Unblock: invalid date=%s: %v", req.Date, err)
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("Unblock: invalid startTime=%s: %v", req.StartTime, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.intervalRepo.DeleteByDateAndStart(ctx, date, startTime); err != nil {
		if errors.Is(err, blockedintervalRepo.ErrIntervalNotFound) {
			s.logger.Warn("Unblock: blocked interval not found for date=%s, start=%s", req.Date, req.StartTime)
			return ErrIntervalNotFound
		}
		s.logger.Error("Unblock: repository error: %v", err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: removed blocked interval for date=%s, start=%s", req.Date, req.StartTime)
	return nil
}

// ListByDate возвращает блокировки на дату, отсортированные по началу
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.BlockedIntervalListResponse, error) {
	intervals, err := s.intervalRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedIntervalList(intervals), nil
}
