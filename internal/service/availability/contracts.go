package availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
)

// ProfileRepository интерфейс репозитория профилей доступности
type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityProfile, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.AvailabilityProfile, error)
	ReplaceSchedule(ctx context.Context, profileID int64, rules []domain.WeeklyRule, overrides []domain.DateOverride) error
	UpdateProfile(ctx context.Context, id int64, label, timezone string) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
