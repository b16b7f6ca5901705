package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	bookingsSvc "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
)

const (
	msgInvalidUID      = "некорректный идентификатор бронирования"
	msgBookingNotFound = "бронирование не найдено"
	msgAccessDenied    = "нет прав на подтверждение бронирования"
	msgInvalidStatus   = "бронирование не ожидает подтверждения"
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

// Handle PATCH /api/v1/bookings/{bookingUid}/confirm
// Подтвердить pending бронирование может только хост
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	uid := vars["bookingUid"]
	if _, err := uuid.Parse(uid); err != nil {
		h.logger.Warn("PATCH /bookings/{uid}/confirm - Invalid booking UID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		// Недостижимо за Auth middleware, защита от неправильной сборки роутера
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	result, err := h.service.ConfirmBooking(r.Context(), uid, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{uid}/confirm - Booking not found: uid=%s", uid)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsSvc.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{uid}/confirm - Access denied: uid=%s, user_id=%d", uid, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsSvc.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{uid}/confirm - Invalid status: uid=%s, error=%v", uid, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{uid}/confirm - Failed to confirm booking: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{uid}/confirm - Booking confirmed successfully: uid=%s", uid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
