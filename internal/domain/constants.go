package domain

// Default policy values
const (
	DefaultDurationMinutes  = 30
	DefaultMinNoticeMinutes = 60 // 1 hour
	DefaultRangeHorizonDays = 60 // максимальный горизонт генерации слотов
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 720 // 12 hours

	MinBufferMinutes = 0
	MaxBufferMinutes = 120 // 2 hours

	MinNoticeMinutes = 0
	MaxNoticeMinutes = 10080 // 1 week

	MinDayOfWeek = 0 // Sunday
	MaxDayOfWeek = 6 // Saturday

	MaxLabelLength              = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxGuestNameLength          = 200
	MaxGuestEmailLength         = 320
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы бронирований, не блокирующие слоты
// Используются для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses статусы бронирований, блокирующие слоты
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
