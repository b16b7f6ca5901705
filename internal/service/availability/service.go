package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	profileRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// Service сервис для работы с профилями доступности
type Service struct {
	profileRepo ProfileRepository
	userClient  UserServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса профилей доступности
func NewService(
	profileRepo ProfileRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		userClient:  userClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetUserProfiles получает все профили доступности пользователя.
// Существование пользователя проверяется через UserService с graceful degradation:
// при недоступности сервиса профили отдаются без проверки
func (s *Service) GetUserProfiles(ctx context.Context, userID int64) (*models.ProfileListResponse, error) {
	s.logger.Info("GetUserProfiles: fetching profiles for user=%d", userID)

	user, err := s.userClient.GetUserWithGracefulDegradation(ctx, userID)
	switch {
	case errors.Is(err, userservice.ErrUserNotFound):
		s.logger.Warn("GetUserProfiles: user=%d not found", userID)
		return nil, ErrUserNotFound
	case errors.Is(err, userservice.ErrServiceDegraded):
		// UserService недоступен - отдаём профили без проверки существования хоста
		s.logger.Warn("GetUserProfiles: userservice degraded, skipping user check for user=%d", userID)
	case err != nil:
		s.logger.Error("GetUserProfiles: userservice error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserProfiles - userservice error: %v", ErrInternal, err)
	case !user.IsActive:
		s.logger.Warn("GetUserProfiles: user=%d is inactive", userID)
		return nil, ErrUserNotFound
	}

	profiles, err := s.profileRepo.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserProfiles: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserProfiles - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserProfiles: fetched %d profiles for user=%d", len(profiles), userID)
	return models.FromDomainProfiles(profiles), nil
}

// UpdateProfile обновляет профиль доступности: метаданные и расписание целиком.
// Замена расписания выполняется в одной транзакции, чтобы читатели не увидели
// профиль с наполовину заменёнными правилами
func (s *Service) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateProfile: updating profile=%d by user=%d", req.ProfileID, req.UserID)

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("UpdateProfile: profile=%d not found", req.ProfileID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("UpdateProfile: repository error for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	if profile.UserID != req.UserID {
		s.logger.Warn("UpdateProfile: access denied for user=%d to profile=%d", req.UserID, req.ProfileID)
		return nil, ErrAccessDenied
	}

	rules, overrides, err := s.convertSchedule(req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.profileRepo.UpdateProfile(txCtx, req.ProfileID, req.Label, req.Timezone); err != nil {
			return err
		}
		return s.profileRepo.ReplaceSchedule(txCtx, req.ProfileID, rules, overrides)
	})
	if err != nil {
		s.logger.Error("UpdateProfile: transaction failed for profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - transaction failed: %v", ErrInternal, err)
	}

	updated, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		s.logger.Error("UpdateProfile: failed to reload profile=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: profile=%d updated, %d rules, %d overrides", req.ProfileID, len(rules), len(overrides))
	return models.FromDomainProfile(updated), nil
}

// validateUpdateRequest проверяет метаданные запроса на обновление профиля
func (s *Service) validateUpdateRequest(req *models.UpdateProfileRequest) error {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidInput)
	}
	if len(label) > domain.MaxLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrInvalidInput, domain.MaxLabelLength)
	}

	if err := tzconv.ValidateZone(req.Timezone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	}

	return nil
}

// convertSchedule конвертирует входное расписание в domain модели
func (s *Service) convertSchedule(req *models.UpdateProfileRequest) ([]domain.WeeklyRule, []domain.DateOverride, error) {
	rules := make([]domain.WeeklyRule, 0, len(req.WeeklyRules))
	for i, input := range req.WeeklyRules {
		rule, err := input.ToDomainRule()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidSchedule, i, err)
		}
		rules = append(rules, rule)
	}

	overrides := make([]domain.DateOverride, 0, len(req.DateOverrides))
	seen := make(map[string]struct{}, len(req.DateOverrides))
	for i, input := range req.DateOverrides {
		override, err := input.ToDomainOverride()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: override %d: %v", ErrInvalidSchedule, i, err)
		}
		// Не больше одного переопределения на дату
		key := override.Date.Format(domain.DateFormat)
		if _, ok := seen[key]; ok {
			return nil, nil, fmt.Errorf("%w: duplicate override for date %s", ErrInvalidSchedule, key)
		}
		seen[key] = struct{}{}
		overrides = append(overrides, override)
	}

	return rules, overrides, nil
}
