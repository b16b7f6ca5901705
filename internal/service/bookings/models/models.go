package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UID                string  `json:"uid"`
	UserID             *int64  `json:"userId,omitempty"`             // ID хоста (при отмене хостом)
	GuestEmail         *string `json:"guestEmail,omitempty"`         // Email гостя (при отмене гостем)
	CancellationReason string  `json:"cancellationReason,omitempty"` // Причина отмены
}

// GetHostBookingsRequest запрос на получение бронирований хоста
type GetHostBookingsRequest struct {
	UserID          int64      `json:"userId"`
	HostID          int64      `json:"hostId"`
	EventTypeID     *int64     `json:"eventTypeId,omitempty"`     // Фильтр по типу события (опционально)
	StartUTC        *time.Time `json:"startUtc,omitempty"`        // Начало периода (опционально)
	EndUTC          *time.Time `json:"endUtc,omitempty"`          // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetHostBookingsRequest) ToDomainFilter() (domain.HostBookingsFilter, error) {
	filter := domain.HostBookingsFilter{
		HostID:          r.HostID,
		EventTypeID:     r.EventTypeID,
		StartUTC:        r.StartUTC,
		EndUTC:          r.EndUTC,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	UID                string     `json:"uid"`
	EventTypeID        int64      `json:"eventTypeId"`
	HostID             int64      `json:"hostId"`
	Status             string     `json:"status"`
	StartUTC           time.Time  `json:"startUtc"`
	EndUTC             time.Time  `json:"endUtc"`
	GuestName          string     `json:"guestName"`
	GuestEmail         string     `json:"guestEmail"`
	GuestTimezone      string     `json:"guestTimezone"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain бронирование в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		UID:                b.UID,
		EventTypeID:        b.EventTypeID,
		HostID:             b.HostID,
		Status:             string(b.Status),
		StartUTC:           b.StartUTC,
		EndUTC:             b.EndUTC,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestTimezone:      b.GuestTimezone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список domain бронирований
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
