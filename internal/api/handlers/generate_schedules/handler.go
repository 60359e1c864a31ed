package generate_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	generateSchedules "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_schedules"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgServiceNotFound = "услуга не найдена"
	msgInvalidRange    = "некорректный диапазон дат"
)

type Handler struct {
	useCase GenerateSchedulesUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSchedulesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/schedules/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq GenerateSchedulesRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("POST /admin/schedules/generate - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req, err := httpReq.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/schedules/generate - Invalid request fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, generateSchedules.ErrServiceNotFound):
			h.logger.Warn("POST /admin/schedules/generate - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, generateSchedules.ErrInvalidRange):
			h.logger.Warn("POST /admin/schedules/generate - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, generateSchedules.ErrInvalidInput):
			h.logger.Warn("POST /admin/schedules/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/schedules/generate - Failed: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/schedules/generate - Generated: service_id=%d, generated=%d, skipped=%d",
		result.ServiceID, result.Generated, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
