package domain

import "time"

// EventType represents a bookable event type with its slot policy
// Буферы применяются вокруг ЧУЖИХ бронирований при проверке конфликтов,
// кандидаты слотов самим буфером не расширяются
type EventType struct {
	ID     int64
	HostID int64
	Title  string
	Slug   string

	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinNoticeMinutes     int
	MaxBookingsPerDay    *int // nil = без ограничения
	RequiresConfirmation bool

	// ProfileID ссылка на профиль доступности; nil = дефолтный профиль хоста
	ProfileID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDailyCap returns true if the event type limits bookings per calendar day
func (e *EventType) HasDailyCap() bool {
	return e.MaxBookingsPerDay != nil && *e.MaxBookingsPerDay > 0
}

// InitialStatus возвращает статус, с которым создаётся новое бронирование
func (e *EventType) InitialStatus() BookingStatus {
	if e.RequiresConfirmation {
		return StatusPending
	}
	return StatusConfirmed
}
