package business_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
)

const (
	msgInvalidBody = "некорректное тело запроса"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleUpsert PUT /api/v1/admin/business-hours
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpsertBusinessHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /admin/business-hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/business-hours - Failed: weekday=%d, error=%v", req.Weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/business-hours - Upserted: weekday=%d, open=%s, close=%s",
		result.Weekday, result.OpenTime, result.CloseTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/admin/business-hours
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBusinessHours(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/business-hours - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/business-hours - %d entries returned", len(result.BusinessHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
