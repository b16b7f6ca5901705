package get_host_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	bookingsSvc "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

const (
	msgInvalidHostID      = "некорректный ID хоста"
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidPeriod      = "некорректный период, ожидается RFC3339"
	msgInvalidTimeRange   = "конец периода должен быть позже начала"
	msgInvalidStatus      = "некорректный статус"
	msgAccessDenied       = "нет прав на просмотр бронирований хоста"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/bookings
// Query params: eventTypeId, from, to (RFC3339), status, includeInactive - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	hostIDStr := vars["hostId"]
	hostID, err := strconv.ParseInt(hostIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/bookings - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	req := &models.GetHostBookingsRequest{
		UserID: userID,
		HostID: hostID,
	}

	query := r.URL.Query()

	if raw := query.Get("eventTypeId"); raw != "" {
		eventTypeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid event type ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventTypeID)
			return
		}
		req.EventTypeID = &eventTypeID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid from param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.StartUTC = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid to param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.EndUTC = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetHostBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrAccessDenied):
			h.logger.Warn("GET /hosts/{id}/bookings - Access denied: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsSvc.ErrInvalidTimeRange):
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid time range: host_id=%d", hostID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookingsSvc.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid status: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /hosts/{id}/bookings - Failed to get bookings: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/bookings - Bookings retrieved successfully: host_id=%d, count=%d", hostID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
