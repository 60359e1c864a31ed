package availability_range

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityRange "github.com/m04kA/SMC-AppointmentService/internal/usecase/availability_range"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// DayResponse доступные слоты одного дня
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// AvailabilityRangeResponse HTTP response model
type AvailabilityRangeResponse struct {
	ServiceID int64         `json:"serviceId"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Days      []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availabilityRange.Response) *AvailabilityRangeResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				StartTime:       slot.StartTime.String(),
				EndTime:         slot.EndTime.String(),
				DurationMinutes: slot.DurationMinutes,
			})
		}
		days = append(days, DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		})
	}

	return &AvailabilityRangeResponse{
		ServiceID: resp.ServiceID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Days:      days,
	}
}
