package create_booking

import "errors"

var (
	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("create_booking: event type not found")

	// ErrProfileNotFound возвращается, когда профиль доступности не найден
	ErrProfileNotFound = errors.New("create_booking: availability profile not found")

	// ErrSlotNotAvailable возвращается, когда запрошенное окно недоступно:
	// не совпадает ни с одним валидным слотом или уже занято конкурентным бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimezone возвращается при некорректной таймзоне гостя
	ErrInvalidTimezone = errors.New("create_booking: invalid timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
