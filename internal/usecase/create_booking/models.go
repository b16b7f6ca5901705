package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	EventTypeID   int64     // ID типа события
	StartUTC      time.Time // Запрошенное начало слота (UTC инстант)
	EndUTC        time.Time // Запрошенный конец слота; должен совпадать с StartUTC + длительность
	GuestName     string    // Имя гостя
	GuestEmail    string    // Email гостя
	GuestTimezone string    // IANA таймзона гостя
	Notes         *string   // Заметки гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	UID           string    // Публичный идентификатор бронирования
	EventTypeID   int64     // ID типа события
	HostID        int64     // ID хоста
	Status        string    // Статус (pending или confirmed)
	StartUTC      time.Time // Начало слота
	EndUTC        time.Time // Конец слота
	GuestName     string    // Имя гостя
	GuestEmail    string    // Email гостя
	GuestTimezone string    // Таймзона гостя
	Notes         *string   // Заметки гостя
	CreatedAt     time.Time // Время создания
}
