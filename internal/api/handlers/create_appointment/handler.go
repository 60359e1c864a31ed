package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceUnavailable  = "услуга недоступна для записи"
	msgSlotOutsideHours    = "выбранное время вне рабочих часов"
	msgSlotTaken           = "выбранный слот уже занят"
	msgScheduleNotFound    = "слот расписания не найден"
	msgScheduleUnavailable = "слот расписания недоступен"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("POST /appointments - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req, err := httpReq.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid request fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceUnavailable):
			h.logger.Warn("POST /appointments - Service unavailable: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgServiceUnavailable)

		case errors.Is(err, createAppointment.ErrScheduleNotFound):
			h.logger.Warn("POST /appointments - Schedule slot not found: %v", err)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createAppointment.ErrScheduleUnavailable):
			h.logger.Warn("POST /appointments - Schedule slot unavailable: %v", err)
			handlers.RespondConflict(w, msgScheduleUnavailable)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrSlotOutsideHours):
			h.logger.Warn("POST /appointments - Slot outside hours: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgSlotOutsideHours)

		case errors.Is(err, createAppointment.ErrInvalidDate),
			errors.Is(err, createAppointment.ErrInvalidStatus),
			errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Created: id=%d, service_id=%d, status=%s",
		result.ID, result.ServiceID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
