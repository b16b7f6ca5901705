package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req Request) error {
	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: event type id must be positive", ErrInvalidInput)
	}

	if req.StartUTC.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name exceeds %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}

	email := strings.TrimSpace(req.GuestEmail)
	if email == "" {
		return fmt.Errorf("%w: guest email is required", ErrInvalidInput)
	}
	// Минимальная структурная проверка, полная валидация email - зона ответственности фронта
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: guest email is malformed", ErrInvalidInput)
	}
	if len(email) > domain.MaxGuestEmailLength {
		return fmt.Errorf("%w: guest email exceeds %d characters", ErrInvalidInput, domain.MaxGuestEmailLength)
	}

	if req.GuestTimezone == "" {
		return fmt.Errorf("%w: guest timezone is required", ErrInvalidInput)
	}
	if err := tzconv.ValidateZone(req.GuestTimezone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
