package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// filterConflicts отбрасывает кандидатов, пересекающихся с существующими
// активными бронированиями хоста, и применяет дневной лимит бронирований.
//
// Буферы события расширяют окна ЧУЖИХ бронирований: бронирование [s, e)
// блокирует интервал [s - bufferBefore, e + bufferAfter). Сам кандидат буферами
// не расширяется, иначе буферы применились бы дважды.
//
// Интервалы полуоткрытые: кандидат, начинающийся ровно в момент окончания
// блокирующего окна, конфликтом не считается.
//
// Дневной лимит считается по календарной дате НАЧАЛА в таймзоне профиля:
// дата с booked >= maxBookingsPerDay активных бронирований не отдаёт ни
// одного кандидата
func filterConflicts(
	candidates []Candidate,
	bookings []*domain.Booking,
	eventType *domain.EventType,
	profileTimezone string,
) ([]Slot, error) {
	bufferBefore := time.Duration(eventType.BufferBeforeMinutes) * time.Minute
	bufferAfter := time.Duration(eventType.BufferAfterMinutes) * time.Minute

	blocked := make([]Candidate, 0, len(bookings))
	perDay := make(map[string]int)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		blocked = append(blocked, Candidate{
			StartUTC: booking.StartUTC.Add(-bufferBefore),
			EndUTC:   booking.EndUTC.Add(bufferAfter),
		})

		if eventType.HasDailyCap() {
			date, _, err := tzconv.UTCToLocal(booking.StartUTC, profileTimezone)
			if err != nil {
				return nil, err
			}
			perDay[date.Format(domain.DateFormat)]++
		}
	}

	slots := make([]Slot, 0, len(candidates))
	for _, candidate := range candidates {
		if intersectsAny(candidate, blocked) {
			continue
		}

		if eventType.HasDailyCap() {
			date, _, err := tzconv.UTCToLocal(candidate.StartUTC, profileTimezone)
			if err != nil {
				return nil, err
			}
			if perDay[date.Format(domain.DateFormat)] >= *eventType.MaxBookingsPerDay {
				continue
			}
		}

		slots = append(slots, Slot{StartUTC: candidate.StartUTC, EndUTC: candidate.EndUTC})
	}

	return slots, nil
}

// intersectsAny проверяет пересечение полуоткрытых интервалов:
// [a, b) и [c, d) пересекаются тогда и только тогда, когда a < d && b > c
func intersectsAny(candidate Candidate, blocked []Candidate) bool {
	for _, window := range blocked {
		if candidate.StartUTC.Before(window.EndUTC) && candidate.EndUTC.After(window.StartUTC) {
			return true
		}
	}
	return false
}
