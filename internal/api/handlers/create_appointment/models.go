package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP модель запроса на создание записи.
// Слот задается либо scheduleId, либо парой date + startTime.
type CreateAppointmentRequest struct {
	ServiceID  int64  `json:"serviceId"`
	ScheduleID *int64 `json:"scheduleId,omitempty"`
	Date       string `json:"date,omitempty"`      // "2025-10-15"
	StartTime  string `json:"startTime,omitempty"` // "10:00"

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	InitialStatus *string `json:"initialStatus,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	req := &createAppointment.Request{
		ServiceID:     r.ServiceID,
		ScheduleID:    r.ScheduleID,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		Notes:         r.Notes,
		InitialStatus: r.InitialStatus,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	if r.StartTime != "" {
		startTime, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = startTime
	}

	return req, nil
}

// AppointmentResponse HTTP модель созданной записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ScheduleID      *int64  `json:"scheduleId,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	ConfirmationCode string  `json:"confirmationCode"`
	ServiceName      string  `json:"serviceName"`
	ServicePrice     float64 `json:"servicePrice"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               resp.ID,
		ServiceID:        resp.ServiceID,
		ScheduleID:       resp.ScheduleID,
		AppointmentDate:  resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Status:           resp.Status,
		ClientName:       resp.ClientName,
		ClientEmail:      resp.ClientEmail,
		ClientPhone:      resp.ClientPhone,
		Notes:            resp.Notes,
		ConfirmationCode: resp.ConfirmationCode,
		ServiceName:      resp.ServiceName,
		ServicePrice:     resp.ServicePrice,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
