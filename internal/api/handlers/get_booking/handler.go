package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	bookingsSvc "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidUID      = "некорректный идентификатор бронирования"
	msgBookingNotFound = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{bookingUid}
// UID бронирования непредсказуем и сам служит капабилити доступа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	uid := vars["bookingUid"]
	if _, err := uuid.Parse(uid); err != nil {
		h.logger.Warn("GET /bookings/{uid} - Invalid booking UID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUID)
		return
	}

	result, err := h.service.GetByUID(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{uid} - Booking not found: uid=%s", uid)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{uid} - Failed to get booking: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{uid} - Booking retrieved successfully: uid=%s", uid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
