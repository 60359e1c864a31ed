package settings

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

// HandleGetBuffer GET /api/v1/admin/settings/buffer
func (h *Handler) HandleGetBuffer(w http.ResponseWriter, r *http.Request) {
	bufferMinutes, err := h.service.GetBufferMinutes(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings/buffer - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/settings/buffer - buffer=%d", bufferMinutes)
	handlers.RespondJSON(w, http.StatusOK, &models.BufferResponse{BufferMinutes: bufferMinutes})
}

// HandleUpdateBuffer PUT /api/v1/admin/settings/buffer
func (h *Handler) HandleUpdateBuffer(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBufferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/buffer - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateBufferMinutes(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PUT /admin/settings/buffer - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/settings/buffer - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings/buffer - Updated: buffer=%d", result.BufferMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
