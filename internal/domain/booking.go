package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a committed guest booking
// Start/End хранятся как абсолютные UTC инстанты; GuestTimezone нужен только
// для отображения и не влияет на проверки пересечений
type Booking struct {
	ID          int64
	UID         string // публичный идентификатор (uuid)
	EventTypeID int64
	HostID      int64
	Status      BookingStatus
	StartUTC    time.Time
	EndUTC      time.Time

	GuestName     string
	GuestEmail    string
	GuestTimezone string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its time window
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
// Отмена - только переход статуса, физическое удаление не поддерживается
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HostBookingsFilter фильтр для получения бронирований хоста
type HostBookingsFilter struct {
	HostID          int64          // Обязательный параметр
	EventTypeID     *int64         // Фильтр по типу события (опционально)
	StartUTC        *time.Time     // Начало периода (опционально)
	EndUTC          *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые бронирования
}
