package cancel_booking

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	GuestEmail         *string `json:"guestEmail,omitempty"`         // Email гостя (при отмене гостем)
	CancellationReason string  `json:"cancellationReason,omitempty"` // Причина отмены
}
