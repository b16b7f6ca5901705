package models

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// EventTypeResponse тип события в ответе сервиса.
// Публичная карточка страницы бронирования: гостю показывается
// название, длительность и минимальный срок уведомления
type EventTypeResponse struct {
	ID                   int64  `json:"id"`
	HostID               int64  `json:"hostId"`
	Title                string `json:"title"`
	Slug                 string `json:"slug"`
	DurationMinutes      int    `json:"durationMinutes"`
	MinNoticeMinutes     int    `json:"minNoticeMinutes"`
	RequiresConfirmation bool   `json:"requiresConfirmation"`
}

// EventTypeListResponse список типов событий хоста
type EventTypeListResponse struct {
	EventTypes []EventTypeResponse `json:"eventTypes"`
	Total      int                 `json:"total"`
}

// FromDomainEventType конвертирует domain тип события в response модель
func FromDomainEventType(et *domain.EventType) *EventTypeResponse {
	return &EventTypeResponse{
		ID:                   et.ID,
		HostID:               et.HostID,
		Title:                et.Title,
		Slug:                 et.Slug,
		DurationMinutes:      et.DurationMinutes,
		MinNoticeMinutes:     et.MinNoticeMinutes,
		RequiresConfirmation: et.RequiresConfirmation,
	}
}

// FromDomainEventTypes конвертирует список domain типов событий
func FromDomainEventTypes(eventTypes []*domain.EventType) *EventTypeListResponse {
	result := make([]EventTypeResponse, 0, len(eventTypes))
	for _, et := range eventTypes {
		result = append(result, *FromDomainEventType(et))
	}
	return &EventTypeListResponse{EventTypes: result, Total: len(result)}
}
