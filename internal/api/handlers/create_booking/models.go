package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventTypeID   int64   `json:"eventTypeId"`
	StartUTC      string  `json:"startUtc"`         // RFC3339 UTC инстант начала слота
	EndUTC        string  `json:"endUtc,omitempty"` // RFC3339 UTC инстант конца слота (опционально)
	GuestName     string  `json:"guestName"`
	GuestEmail    string  `json:"guestEmail"`
	GuestTimezone string  `json:"guestTimezone"` // IANA таймзона гостя
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	UID           string  `json:"uid"`
	EventTypeID   int64   `json:"eventTypeId"`
	HostID        int64   `json:"hostId"`
	Status        string  `json:"status"`
	StartUTC      string  `json:"startUtc"`
	EndUTC        string  `json:"endUtc"`
	GuestName     string  `json:"guestName"`
	GuestEmail    string  `json:"guestEmail"`
	GuestTimezone string  `json:"guestTimezone"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (createBooking.Request, error) {
	startUTC, err := time.Parse(time.RFC3339, r.StartUTC)
	if err != nil {
		return createBooking.Request{}, err
	}

	var endUTC time.Time
	if r.EndUTC != "" {
		endUTC, err = time.Parse(time.RFC3339, r.EndUTC)
		if err != nil {
			return createBooking.Request{}, err
		}
	}

	return createBooking.Request{
		EventTypeID:   r.EventTypeID,
		StartUTC:      startUTC,
		EndUTC:        endUTC,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestTimezone: r.GuestTimezone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		UID:           resp.UID,
		EventTypeID:   resp.EventTypeID,
		HostID:        resp.HostID,
		Status:        resp.Status,
		StartUTC:      resp.StartUTC.Format(time.RFC3339),
		EndUTC:        resp.EndUTC.Format(time.RFC3339),
		GuestName:     resp.GuestName,
		GuestEmail:    resp.GuestEmail,
		GuestTimezone: resp.GuestTimezone,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
