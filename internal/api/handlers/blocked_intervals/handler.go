package blocked_intervals

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/blocks"
	"github.com/m04kA/SMC-AppointmentService/internal/service/blocks/models"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgIntervalNotFound = "блокировка не найдена"
)

type Handler struct {
	service BlocksService
	logger  Logger
}

func NewHandler(service BlocksService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleBlock POST /api/v1/admin/blocked-intervals
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var req models.BlockIntervalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-intervals - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Block(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-intervals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/blocked-intervals - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-intervals - Blocked: id=%d, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUnblock DELETE /api/v1/admin/blocked-intervals?date=&time=
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	req := models.UnblockIntervalRequest{
		Date:      r.URL.Query().Get("date"),
		StartTime: r.URL.Query().Get("time"),
	}

	if err := h.service.Unblock(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, blocks.ErrIntervalNotFound):
			h.logger.Warn("DELETE /admin/blocked-intervals - Not found: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondNotFound(w, msgIntervalNotFound)

		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/blocked-intervals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /admin/blocked-intervals - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-intervals - Unblocked: date=%s, start=%s", req.Date, req.StartTime)
	handlers.RespondNoContent(w)
}

// HandleList GET /api/v1/admin/blocked-intervals?date=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /admin/blocked-intervals - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/blocked-intervals - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/blocked-intervals - %d intervals returned: date=%s",
		len(result.BlockedIntervals), date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, result)
}
