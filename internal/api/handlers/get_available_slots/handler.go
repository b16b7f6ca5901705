package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgMissingFrom        = "параметр from обязателен"
	msgMissingTo          = "параметр to обязателен"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgInvalidTimezone    = "некорректная таймзона"
	msgEventTypeNotFound  = "тип события не найден"
	msgProfileNotFound    = "профиль доступности не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/event-types/{eventTypeId}/available-slots
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD), timezone (optional, IANA)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventTypeIDStr := vars["eventTypeId"]
	eventTypeID, err := strconv.ParseInt(eventTypeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /event-types/{id}/available-slots - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /event-types/{id}/available-slots - Missing from param")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	toStr := r.URL.Query().Get("to")
	if toStr == "" {
		h.logger.Warn("GET /event-types/{id}/available-slots - Missing to param")
		handlers.RespondBadRequest(w, msgMissingTo)
		return
	}

	timezone := r.URL.Query().Get("timezone")

	useCaseReq, err := ToUseCaseRequest(eventTypeID, fromStr, toStr, timezone)
	if err != nil {
		h.logger.Warn("GET /event-types/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEventTypeNotFound):
			h.logger.Warn("GET /event-types/{id}/available-slots - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, getAvailableSlots.ErrProfileNotFound):
			h.logger.Warn("GET /event-types/{id}/available-slots - Profile not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidTimezone):
			h.logger.Warn("GET /event-types/{id}/available-slots - Invalid timezone: %q", timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /event-types/{id}/available-slots - Invalid request: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /event-types/{id}/available-slots - Failed to get slots: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response, err := FromUseCaseResponse(result)
	if err != nil {
		h.logger.Error("GET /event-types/{id}/available-slots - Failed to render response: event_type_id=%d, error=%v", eventTypeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /event-types/{id}/available-slots - Slots retrieved successfully: event_type_id=%d, slots_count=%d",
		eventTypeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
