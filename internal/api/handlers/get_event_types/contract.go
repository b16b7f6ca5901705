package get_event_types

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/eventtypes/models"
)

type EventTypeService interface {
	GetHostEventTypes(ctx context.Context, hostID int64) (*models.EventTypeListResponse, error)
	GetBySlug(ctx context.Context, hostID int64, slug string) (*models.EventTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
