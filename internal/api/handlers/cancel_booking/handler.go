package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingsSvc "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

const (
	msgInvalidUID         = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgReasonTooLong      = "слишком длинная причина отмены"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "нет прав на отмену бронирования"
	msgCannotCancel       = "бронирование не может быть отменено"
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

// Handle PATCH /api/v1/bookings/{bookingUid}/cancel
// Отменить может хост (заголовок X-User-ID) или гость (guestEmail в теле)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	uid := vars["bookingUid"]
	if _, err := uuid.Parse(uid); err != nil {
		h.logger.Warn("PATCH /bookings/{uid}/cancel - Invalid booking UID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{uid}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	svcReq := &models.CancelBookingRequest{
		UID:                uid,
		UserID:             middleware.OptionalUserID(r),
		GuestEmail:         req.GuestEmail,
		CancellationReason: req.CancellationReason,
	}

	result, err := h.service.Cancel(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsSvc.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{uid}/cancel - Booking not found: uid=%s", uid)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsSvc.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{uid}/cancel - Access denied: uid=%s", uid)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsSvc.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{uid}/cancel - Cannot cancel: uid=%s, error=%v", uid, err)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/{uid}/cancel - Failed to cancel booking: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{uid}/cancel - Booking cancelled successfully: uid=%s", uid)
	handlers.RespondJSON(w, http.StatusOK, result)
}
