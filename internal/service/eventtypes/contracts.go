package eventtypes

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetAllByHostID(ctx context.Context, hostID int64) ([]*domain.EventType, error)
	GetByHostAndSlug(ctx context.Context, hostID int64, slug string) (*domain.EventType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
