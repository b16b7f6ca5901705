package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	EventTypeID int64           `json:"eventTypeId"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Timezone    string          `json:"timezone"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель доступного слота
type AvailableSlot struct {
	StartUTC  string `json:"startUtc"`  // RFC3339 UTC инстант
	EndUTC    string `json:"endUtc"`    // RFC3339 UTC инстант
	LocalDate string `json:"localDate"` // Дата в таймзоне отображения
	StartTime string `json:"startTime"` // Локальное время начала "HH:MM"
	EndTime   string `json:"endTime"`   // Локальное время конца "HH:MM"
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(eventTypeID int64, fromStr, toStr, timezone string) (getAvailableSlots.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}

	return getAvailableSlots.Request{
		EventTypeID:   eventTypeID,
		RangeStart:    from,
		RangeEnd:      to,
		GuestTimezone: timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Локальные поля слотов отображаются в таймзоне ответа
func FromUseCaseResponse(resp *getAvailableSlots.Response) (*AvailableSlotsResponse, error) {
	slots := make([]AvailableSlot, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		startDate, startTime, err := tzconv.UTCToLocal(slot.StartUTC, resp.Timezone)
		if err != nil {
			return nil, err
		}
		_, endTime, err := tzconv.UTCToLocal(slot.EndUTC, resp.Timezone)
		if err != nil {
			return nil, err
		}

		slots = append(slots, AvailableSlot{
			StartUTC:  slot.StartUTC.Format(time.RFC3339),
			EndUTC:    slot.EndUTC.Format(time.RFC3339),
			LocalDate: startDate.Format(domain.DateFormat),
			StartTime: startTime.String(),
			EndTime:   endTime.String(),
		})
	}

	return &AvailableSlotsResponse{
		EventTypeID: resp.EventTypeID,
		From:        resp.RangeStart.Format(domain.DateFormat),
		To:          resp.RangeEnd.Format(domain.DateFormat),
		Timezone:    resp.Timezone,
		Slots:       slots,
	}, nil
}
