package update_profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	availabilitySvc "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidProfileID   = "некорректный ID профиля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgProfileNotFound    = "профиль доступности не найден"
	msgAccessDenied       = "нет прав на изменение профиля"
	msgInvalidSchedule    = "некорректное расписание"
	msgInvalidTimezone    = "некорректная таймзона"
	msgInvalidInput       = "некорректные данные профиля"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability-profiles/{profileId}
// Обновляет метаданные профиля и заменяет расписание целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	profileIDStr := vars["profileId"]
	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /availability-profiles/{id} - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability-profiles/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), req.ToServiceRequest(userID, profileID))
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrProfileNotFound):
			h.logger.Warn("PUT /availability-profiles/{id} - Profile not found: profile_id=%d", profileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, availabilitySvc.ErrAccessDenied):
			h.logger.Warn("PUT /availability-profiles/{id} - Access denied: profile_id=%d, user_id=%d", profileID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availabilitySvc.ErrInvalidSchedule):
			h.logger.Warn("PUT /availability-profiles/{id} - Invalid schedule: profile_id=%d, error=%v", profileID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, availabilitySvc.ErrInvalidTimezone):
			h.logger.Warn("PUT /availability-profiles/{id} - Invalid timezone: profile_id=%d", profileID)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, availabilitySvc.ErrInvalidInput):
			h.logger.Warn("PUT /availability-profiles/{id} - Invalid input: profile_id=%d, error=%v", profileID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /availability-profiles/{id} - Failed to update profile: profile_id=%d, error=%v", profileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability-profiles/{id} - Profile updated successfully: profile_id=%d", profileID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
