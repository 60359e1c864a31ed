package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businesshoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/businesshours"
	holidayRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
)

// resolveCacheTTL время жизни кэша разрешенных дней.
// Календарь меняется редко, но админские правки должны подхватываться быстро.
const resolveCacheTTL = 30 * time.Second

// Service сервис бизнес-календаря: рабочие часы, праздники, настройки слотов
type Service struct {
	businessHoursRepo BusinessHoursRepository
	holidayRepo       HolidayRepository
	settingsRepo      SettingsRepository
	resolveCache      *cache.Cache
	logger            Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	businessHoursRepo BusinessHoursRepository,
	holidayRepo HolidayRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *Service {
	return &Service{
		businessHoursRepo: businessHoursRepo,
		holidayRepo:       holidayRepo,
		settingsRepo:      settingsRepo,
		resolveCache:      cache.New(resolveCacheTTL, 2*resolveCacheTTL),
		logger:            logger,
	}
}

// ResolveDay определяет рабочее окно на дату.
// Порядок проверок: праздник (включая повторяющиеся по месяцу/дню) ->
// рабочие часы по дню недели. Отсутствие или неактивность записи
// рабочих часов означает закрытый день.
func (s *Service) ResolveDay(ctx context.Context, date time.Time) (domain.OperatingWindow, error) {
	cacheKey := date.Format(domain.DateFormat)
	if cached, found := s.resolveCache.Get(cacheKey); found {
		return cached.(domain.OperatingWindow), nil
	}

	// 1. Проверяем праздники
	_, err := s.holidayRepo.FindMatching(ctx, date)
	if err == nil {
		s.logger.Info("ResolveDay: date=%s is a holiday, day is closed", cacheKey)
		window := domain.Closed()
		s.resolveCache.SetDefault(cacheKey, window)
		return window, nil
	}
	if !errors.Is(err, holidayRepo.ErrHolidayNotFound) {
		s.logger.Error("ResolveDay: failed to check holidays for date=%s: %v", cacheKey, err)
		return domain.Closed(), fmt.Errorf("%w: ResolveDay - holiday lookup: %v", ErrInternal, err)
	}

	// 2. Ищем рабочие часы по дню недели
	hours, err := s.businessHoursRepo.GetByWeekday(ctx, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, businesshoursRepo.ErrNotFound) {
			window := domain.Closed()
			s.resolveCache.SetDefault(cacheKey, window)
			return window, nil
		}
		s.logger.Error("ResolveDay: failed to get business hours for date=%s: %v", cacheKey, err)
		return domain.Closed(), fmt.Errorf("%w: ResolveDay - business hours lookup: %v", ErrInternal, err)
	}

	if !hours.IsActive {
		window := domain.Closed()
		s.resolveCache.SetDefault(cacheKey, window)
		return window, nil
	}

	window := domain.OperatingWindow{
		IsOpen:    true,
		OpenTime:  hours.OpenTime,
		CloseTime: hours.CloseTime,
	}
	s.resolveCache.SetDefault(cacheKey, window)
	return window, nil
}

// GetBufferMinutes возвращает настроенную паузу между соседними слотами
func (s *Service) GetBufferMinutes(ctx context.Context) (int, error) {
	buffer, err := s.settingsRepo.GetInt(ctx, domain.SettingBufferMinutes, domain.DefaultBufferMinutes)
	if err != nil {
		s.logger.Error("GetBufferMinutes: failed to read setting: %v", err)
		return 0, fmt.Errorf("%w: GetBufferMinutes - settings lookup: %v", ErrInternal, err)
	}
	return buffer, nil
}

// UpdateBufferMinutes изменяет паузу между соседними слотами
func (s *Service) UpdateBufferMinutes(ctx context.Context, req *models.UpdateBufferRequest) (*models.BufferResponse, error) {
	s.logger.Info("UpdateBufferMinutes: setting buffer to %d minutes", req.BufferMinutes)

	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		s.logger.Warn("UpdateBufferMinutes: buffer %d out of range", req.BufferMinutes)
		return nil, fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	err := s.settingsRepo.Upsert(ctx, domain.SettingBufferMinutes, strconv.Itoa(req.BufferMinutes))
	if err != nil {
		s.logger.Error("UpdateBufferMinutes: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateBufferMinutes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBufferMinutes: buffer updated to %d minutes", req.BufferMinutes)
	return &models.BufferResponse{BufferMinutes: req.BufferMinutes}, nil
}

// UpsertBusinessHours создает или обновляет рабочие часы дня недели
func (s *Service) UpsertBusinessHours(ctx context.Context, req *models.UpsertBusinessHoursRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("UpsertBusinessHours: weekday=%d, open=%s, close=%s, active=%v",
		req.Weekday, req.OpenTime, req.CloseTime, req.IsActive)

	// 1. Валидируем входные данные
	if req.Weekday < domain.MinWeekday || req.Weekday > domain.MaxWeekday {
		s.logger.Warn("UpsertBusinessHours: invalid weekday=%d", req.Weekday)
		return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}

	hours, err := req.ToDomainBusinessHours()
	if err != nil {
		s.logger.Warn("UpsertBusinessHours: invalid time format: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !hours.OpenTime.IsBefore(hours.CloseTime) {
		s.logger.Warn("UpsertBusinessHours: openTime=%s is not before closeTime=%s", req.OpenTime, req.CloseTime)
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	// 2. Сохраняем (upsert по дню недели)
	saved, err := s.businessHoursRepo.Upsert(ctx, hours)
	if err != nil {
		s.logger.Error("UpsertBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertBusinessHours - repository error: %v", ErrInternal, err)
	}

	// 3. Сбрасываем кэш, чтобы изменение подхватилось сразу
	s.resolveCache.Flush()

	s.logger.Info("UpsertBusinessHours: saved business hours id=%d for weekday=%d", saved.ID, saved.Weekday)
	return models.FromDomainBusinessHours(saved), nil
}

// ListBusinessHours возвращает рабочие часы всех дней недели
func (s *Service) ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error) {
	hours, err := s.businessHoursRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinessHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusinessHoursList(hours), nil
}

// CreateHoliday создает праздничный день
func (s *Service) CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: date=%s, name=%s, recurring=%v", req.Date, req.Name, req.IsRecurring)

	// 1. Валидируем входные данные
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("CreateHoliday: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if req.Name == "" {
		s.logger.Warn("CreateHoliday: empty name for date=%s", req.Date)
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	// 2. Создаем праздник
	created, err := s.holidayRepo.Create(ctx, &domain.Holiday{
		Date:        date,
		Name:        req.Name,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		if errors.Is(err, holidayRepo.ErrDuplicateHoliday) {
			s.logger.Warn("CreateHoliday: holiday already exists for date=%s", req.Date)
			return nil, ErrDuplicateHoliday
		}
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %v", ErrInternal, err)
	}

	// 3. Сбрасываем кэш разрешенных дней
	s.resolveCache.Flush()

	s.logger.Info("CreateHoliday: created holiday id=%d for date=%s", created.ID, req.Date)
	return models.FromDomainHoliday(created), nil
}

// ListHolidays возвращает все праздничные дни
func (s *Service) ListHolidays(ctx context.Context) (*models.HolidayListResponse, error) {
	holidays, err := s.holidayRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// DeleteHoliday удаляет праздничный день по ID
func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	s.logger.Info("DeleteHoliday: deleting holiday id=%d", id)

	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("DeleteHoliday: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("DeleteHoliday: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteHoliday - repository error: %v", ErrInternal, err)
	}

	s.resolveCache.Flush()

	s.logger.Info("DeleteHoliday: deleted holiday id=%d", id)
	return nil
}
