package generate_schedules

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	generateSchedules "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_schedules"
)

// GenerateSchedulesRequest HTTP модель запроса на предгенерацию слотов
type GenerateSchedulesRequest struct {
	ServiceID int64  `json:"serviceId"`
	StartDate string `json:"startDate"` // "2025-10-01"
	EndDate   string `json:"endDate"`   // "2025-10-31"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSchedulesRequest) ToUseCaseRequest() (*generateSchedules.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &generateSchedules.Request{
		ServiceID: r.ServiceID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// GenerateSchedulesResponse HTTP модель результата генерации
type GenerateSchedulesResponse struct {
	ServiceID int64 `json:"serviceId"`
	Days      int   `json:"days"`
	Generated int64 `json:"generated"`
	Skipped   int64 `json:"skipped"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSchedules.Response) *GenerateSchedulesResponse {
	return &GenerateSchedulesResponse{
		ServiceID: resp.ServiceID,
		Days:      resp.Days,
		Generated: resp.Generated,
		Skipped:   resp.Skipped,
	}
}
