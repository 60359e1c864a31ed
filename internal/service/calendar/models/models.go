package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// UpsertBusinessHoursRequest запрос на создание/обновление рабочих часов дня недели
type UpsertBusinessHoursRequest struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsActive  bool   `json:"isActive"`
}

// ToDomainBusinessHours конвертирует request в domain модель
func (r *UpsertBusinessHoursRequest) ToDomainBusinessHours() (*domain.BusinessHours, error) {
	openTime, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, err
	}

	return &domain.BusinessHours{
		Weekday:   r.Weekday,
		OpenTime:  openTime,
		CloseTime: closeTime,
		IsActive:  r.IsActive,
	}, nil
}

// CreateHolidayRequest запрос на создание праздничного дня
type CreateHolidayRequest struct {
	Date        string  `json:"date"` // "2025-12-25"
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
}

// UpdateBufferRequest запрос на изменение паузы между слотами
type UpdateBufferRequest struct {
	BufferMinutes int `json:"bufferMinutes"`
}

// Response модели

// BusinessHoursResponse ответ с рабочими часами дня недели
type BusinessHoursResponse struct {
	ID        int64     `json:"id"`
	Weekday   int       `json:"weekday"`
	OpenTime  string    `json:"openTime"`
	CloseTime string    `json:"closeTime"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BusinessHoursListResponse ответ со списком рабочих часов
type BusinessHoursListResponse struct {
	BusinessHours []BusinessHoursResponse `json:"businessHours"`
}

// HolidayResponse ответ с праздничным днем
type HolidayResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
}

// HolidayListResponse ответ со списком праздничных дней
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// BufferResponse ответ с текущей паузой между слотами
type BufferResponse struct {
	BufferMinutes int `json:"bufferMinutes"`
}

// Методы конвертации

// FromDomainBusinessHours конвертирует domain модель в DTO
func FromDomainBusinessHours(h *domain.BusinessHours) *BusinessHoursResponse {
	if h == nil {
		return nil
	}

	return &BusinessHoursResponse{
		ID:        h.ID,
		Weekday:   h.Weekday,
		OpenTime:  h.OpenTime.String(),
		CloseTime: h.CloseTime.String(),
		IsActive:  h.IsActive,
		UpdatedAt: h.UpdatedAt,
	}
}

// FromDomainBusinessHoursList конвертирует список domain моделей в DTO
func FromDomainBusinessHoursList(hours []*domain.BusinessHours) *BusinessHoursListResponse {
	resp := &BusinessHoursListResponse{
		BusinessHours: make([]BusinessHoursResponse, 0, len(hours)),
	}

	for _, h := range hours {
		if hoursResp := FromDomainBusinessHours(h); hoursResp != nil {
			resp.BusinessHours = append(resp.BusinessHours, *hoursResp)
		}
	}

	return resp
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}

	return &HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(domain.DateFormat),
		Name:        h.Name,
		Description: h.Description,
		IsRecurring: h.IsRecurring,
	}
}

// FromDomainHolidayList конвертирует список domain моделей в DTO
func FromDomainHolidayList(holidays []*domain.Holiday) *HolidayListResponse {
	resp := &HolidayListResponse{
		Holidays: make([]HolidayResponse, 0, len(holidays)),
	}

	for _, h := range holidays {
		if holidayResp := FromDomainHoliday(h); holidayResp != nil {
			resp.Holidays = append(resp.Holidays, *holidayResp)
		}
	}

	return resp
}
