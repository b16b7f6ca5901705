package get_event_types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	eventTypesSvc "github.com/m04kA/SMC-AvailabilityService/internal/service/eventtypes"
)

const (
	msgInvalidHostID     = "некорректный ID хоста"
	msgInvalidSlug       = "некорректный slug типа события"
	msgEventTypeNotFound = "тип события не найден"
)

type Handler struct {
	service EventTypeService
	logger  Logger
}

func NewHandler(service EventTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/hosts/{hostId}/event-types
// Публичный список типов событий для страницы бронирования хоста
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	hostID, err := strconv.ParseInt(vars["hostId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/event-types - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	result, err := h.service.GetHostEventTypes(r.Context(), hostID)
	if err != nil {
		h.logger.Error("GET /hosts/{id}/event-types - Failed to get event types: host_id=%d, error=%v", hostID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /hosts/{id}/event-types - Event types retrieved successfully: host_id=%d, count=%d", hostID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleBySlug GET /api/v1/hosts/{hostId}/event-types/{slug}
// Публичная карточка типа события по адресу страницы бронирования
func (h *Handler) HandleBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	hostID, err := strconv.ParseInt(vars["hostId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/event-types/{slug} - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	slug := vars["slug"]

	result, err := h.service.GetBySlug(r.Context(), hostID, slug)
	if err != nil {
		switch {
		case errors.Is(err, eventTypesSvc.ErrEventTypeNotFound):
			h.logger.Warn("GET /hosts/{id}/event-types/{slug} - Event type not found: host_id=%d, slug=%s", hostID, slug)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, eventTypesSvc.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/event-types/{slug} - Invalid slug: host_id=%d, slug=%q", hostID, slug)
			handlers.RespondBadRequest(w, msgInvalidSlug)

		default:
			h.logger.Error("GET /hosts/{id}/event-types/{slug} - Failed to get event type: host_id=%d, slug=%s, error=%v", hostID, slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/event-types/{slug} - Event type retrieved successfully: host_id=%d, slug=%s", hostID, slug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
