package eventtypes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	eventTypeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/eventtypes/models"
)

// Service сервис публичных карточек типов событий (страница бронирования)
type Service struct {
	eventTypeRepo EventTypeRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса типов событий
func NewService(eventTypeRepo EventTypeRepository, logger Logger) *Service {
	return &Service{
		eventTypeRepo: eventTypeRepo,
		logger:        logger,
	}
}

// GetHostEventTypes получает все типы событий хоста.
// Публичный список для страницы бронирования
func (s *Service) GetHostEventTypes(ctx context.Context, hostID int64) (*models.EventTypeListResponse, error) {
	s.logger.Info("GetHostEventTypes: fetching event types for host=%d", hostID)

	eventTypes, err := s.eventTypeRepo.GetAllByHostID(ctx, hostID)
	if err != nil {
		s.logger.Error("GetHostEventTypes: repository error for host=%d: %v", hostID, err)
		return nil, fmt.Errorf("%w: GetHostEventTypes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventTypes(eventTypes), nil
}

// GetBySlug получает тип события хоста по slug (адрес страницы бронирования)
func (s *Service) GetBySlug(ctx context.Context, hostID int64, slug string) (*models.EventTypeResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	s.logger.Info("GetBySlug: fetching event type host=%d slug=%s", hostID, slug)

	eventType, err := s.eventTypeRepo.GetByHostAndSlug(ctx, hostID, slug)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			s.logger.Warn("GetBySlug: event type host=%d slug=%s not found", hostID, slug)
			return nil, ErrEventTypeNotFound
		}
		s.logger.Error("GetBySlug: repository error for host=%d slug=%s: %v", hostID, slug, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventType(eventType), nil
}
