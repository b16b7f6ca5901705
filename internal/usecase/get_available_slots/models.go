package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	EventTypeID   int64     // ID типа события
	RangeStart    time.Time // Первая календарная дата диапазона (включительно)
	RangeEnd      time.Time // Последняя календарная дата диапазона (включительно)
	GuestTimezone string    // IANA таймзона гостя для отображения (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	EventTypeID int64     // ID типа события
	RangeStart  time.Time // Начало диапазона
	RangeEnd    time.Time // Конец диапазона
	Timezone    string    // Таймзона, в которой отображаются локальные времена
	Slots       []Slot    // Доступные слоты, отсортированы по возрастанию начала
}

// Slot доступное окно бронирования
type Slot struct {
	StartUTC time.Time // Начало слота (UTC инстант)
	EndUTC   time.Time // Конец слота (UTC инстант)
}

// Candidate окно-кандидат, сгенерированное из правил доступности до фильтрации
type Candidate struct {
	StartUTC time.Time
	EndUTC   time.Time
}
