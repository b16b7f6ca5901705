package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByUID получает бронирование по публичному идентификатору.
// UID непредсказуем (uuid), сам по себе служит капабилити доступа
func (s *Service) GetByUID(ctx context.Context, uid string) (*models.BookingResponse, error) {
	s.logger.Info("GetByUID: fetching booking uid=%s", uid)

	booking, err := s.bookingRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByUID: booking uid=%s not found", uid)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByUID: repository error for booking uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: GetByUID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetHostBookings получает бронирования хоста за период.
// Доступ только у самого хоста
func (s *Service) GetHostBookings(ctx context.Context, req *models.GetHostBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetHostBookings: fetching bookings for host=%d by user=%d", req.HostID, req.UserID)

	if req.UserID != req.HostID {
		s.logger.Warn("GetHostBookings: access denied for user=%d to host=%d bookings", req.UserID, req.HostID)
		return nil, ErrAccessDenied
	}

	if req.StartUTC != nil && req.EndUTC != nil && !req.EndUTC.After(*req.StartUTC) {
		return nil, fmt.Errorf("%w: period end must be after period start", ErrInvalidTimeRange)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetHostBookings: invalid status=%v for host=%d", req.Status, req.HostID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByHostWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetHostBookings: repository error for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: GetHostBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHostBookings: fetched %d bookings for host=%d", len(bookings), req.HostID)
	return models.FromDomainBookings(bookings), nil
}

// Cancel отменяет бронирование.
// Отменить может хост (по userId) или гость (по совпадению email).
// Отмена идемпотентна по статусу: уже отменённое бронирование даёт ErrCannotCancel
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking uid=%s", req.UID)

	booking, err := s.bookingRepo.GetByUID(ctx, req.UID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking uid=%s not found", req.UID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking uid=%s: %v", req.UID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCancelAccess(booking, req); err != nil {
		s.logger.Warn("Cancel: access denied to booking uid=%s", req.UID)
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking uid=%s in status=%s cannot be cancelled", req.UID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: repository error for booking uid=%s: %v", req.UID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.bookingRepo.GetByUID(ctx, req.UID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking uid=%s: %v", req.UID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking uid=%s cancelled", req.UID)
	return models.FromDomainBooking(cancelled), nil
}

// ConfirmBooking переводит бронирование из pending в confirmed.
// Доступ только у хоста
func (s *Service) ConfirmBooking(ctx context.Context, uid string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("ConfirmBooking: confirming booking uid=%s by user=%d", uid, userID)

	booking, err := s.bookingRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ConfirmBooking: repository error for booking uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: ConfirmBooking - repository error: %v", ErrInternal, err)
	}

	if booking.HostID != userID {
		s.logger.Warn("ConfirmBooking: access denied for user=%d to booking uid=%s", userID, uid)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: only pending bookings can be confirmed, got %s", ErrInvalidStatus, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed); err != nil {
		s.logger.Error("ConfirmBooking: repository error for booking uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: ConfirmBooking - repository error: %v", ErrInternal, err)
	}

	confirmed, err := s.bookingRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: ConfirmBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ConfirmBooking: booking uid=%s confirmed", uid)
	return models.FromDomainBooking(confirmed), nil
}

// checkCancelAccess проверяет право на отмену: хост по userId или гость по email
func (s *Service) checkCancelAccess(booking *domain.Booking, req *models.CancelBookingRequest) error {
	if req.UserID != nil && *req.UserID == booking.HostID {
		return nil
	}
	if req.GuestEmail != nil && strings.EqualFold(*req.GuestEmail, booking.GuestEmail) {
		return nil
	}
	return ErrAccessDenied
}
