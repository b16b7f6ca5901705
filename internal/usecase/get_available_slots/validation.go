package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req Request) error {
	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: event type id must be positive", ErrInvalidInput)
	}

	if req.RangeStart.IsZero() || req.RangeEnd.IsZero() {
		return fmt.Errorf("%w: range start and end are required", ErrInvalidDateRange)
	}

	if req.RangeEnd.Before(req.RangeStart) {
		return fmt.Errorf("%w: range end is before range start", ErrInvalidDateRange)
	}

	if req.GuestTimezone != "" {
		if err := tzconv.ValidateZone(req.GuestTimezone); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
		}
	}

	return nil
}
