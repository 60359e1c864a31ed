package check_slot

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	checkSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
)

// SlotAvailabilityResponse HTTP-модель ответа о доступности слота
type SlotAvailabilityResponse struct {
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

func toResponse(result *checkSlot.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		ServiceID: result.ServiceID,
		Date:      result.Date.Format(domain.DateFormat),
		StartTime: result.StartTime.String(),
		Available: result.Available,
	}
}
