package holidays

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/service/calendar/models"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidHolidayID = "некорректный ID праздничного дня"
	msgHolidayNotFound  = "праздничный день не найден"
	msgDuplicateHoliday = "праздничный день на эту дату уже существует"
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

// HandleCreate POST /api/v1/admin/holidays
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/holidays - Invalid JSON: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreateHoliday(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrDuplicateHoliday):
			h.logger.Warn("POST /admin/holidays - Duplicate holiday: date=%s", req.Date)
			handlers.RespondConflict(w, msgDuplicateHoliday)

		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("POST /admin/holidays - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/holidays - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/holidays - Created: id=%d, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/admin/holidays
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListHolidays(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/holidays - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/holidays - %d holidays returned", len(result.Holidays))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/holidays/{holidayId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holidayID, err := strconv.ParseInt(vars["holidayId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), holidayID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrHolidayNotFound):
			h.logger.Warn("DELETE /admin/holidays/{id} - Not found: id=%d", holidayID)
			handlers.RespondNotFound(w, msgHolidayNotFound)

		default:
			h.logger.Error("DELETE /admin/holidays/{id} - Failed: id=%d, error=%v", holidayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/holidays/{id} - Deleted: id=%d", holidayID)
	handlers.RespondNoContent(w)
}
