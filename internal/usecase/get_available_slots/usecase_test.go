package get_available_slots

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilitystorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	eventtypestorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByHostWithFilter(_ context.Context, _ domain.HostBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeEventTypeRepo struct {
	eventType *domain.EventType
	err       error
}

func (f *fakeEventTypeRepo) GetByID(_ context.Context, _ int64) (*domain.EventType, error) {
	return f.eventType, f.err
}

type fakeProfileRepo struct {
	byID      *domain.AvailabilityProfile
	byUser    *domain.AvailabilityProfile
	errByID   error
	errByUser error
}

func (f *fakeProfileRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilityProfile, error) {
	return f.byID, f.errByID
}

func (f *fakeProfileRepo) GetDefaultByUserID(_ context.Context, _ int64) (*domain.AvailabilityProfile, error) {
	return f.byUser, f.errByUser
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

// passthroughTxManager выполняет fn без настоящей транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdayRule(day int, start, end types.TimeString) domain.WeeklyRule {
	return domain.WeeklyRule{DayOfWeek: day, StartTime: start, EndTime: end}
}

// Понедельник 2026-09-14; "сейчас" задолго до диапазона
var (
	testMonday = utcDate(2026, time.September, 14)
	testNow    = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
)

func newTestUseCase(profile *domain.AvailabilityProfile, eventType *domain.EventType, bookings []*domain.Booking) *UseCase {
	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeEventTypeRepo{eventType: eventType},
		&fakeProfileRepo{byID: profile, byUser: profile},
		passthroughTxManager{},
		&fixedTime{now: testNow},
		nopLogger{},
	)
}

func defaultEventType() *domain.EventType {
	return &domain.EventType{
		ID:              1,
		HostID:          42,
		Title:           "Consultation",
		Slug:            "consultation",
		DurationMinutes: 60,
		ProfileID:       ptr.Ptr(int64(7)),
	}
}

func defaultProfile() *domain.AvailabilityProfile {
	return &domain.AvailabilityProfile{
		ID:       7,
		UserID:   42,
		Label:    "Working hours",
		Timezone: "UTC",
		WeeklyRules: []domain.WeeklyRule{
			weekdayRule(1, "09:00", "17:00"), // понедельник
		},
	}
}

func TestExecute_BasicGeneration(t *testing.T) {
	uc := newTestUseCase(defaultProfile(), defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)

	// 09:00-17:00 с часовыми слотами - ровно 8
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, testMonday.Add(9*time.Hour), resp.Slots[0].StartUTC)
	assert.Equal(t, testMonday.Add(17*time.Hour), resp.Slots[len(resp.Slots)-1].EndUTC)

	for i, slot := range resp.Slots {
		assert.Equal(t, time.Hour, slot.EndUTC.Sub(slot.StartUTC), "slot %d duration", i)
		if i > 0 {
			assert.False(t, slot.StartUTC.Before(resp.Slots[i-1].EndUTC), "slot %d overlaps previous", i)
		}
	}
}

func TestExecute_Deterministic(t *testing.T) {
	uc := newTestUseCase(defaultProfile(), defaultEventType(), nil)
	req := Request{EventTypeID: 1, RangeStart: testMonday, RangeEnd: testMonday.AddDate(0, 0, 6)}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_MergesOverlappingRules(t *testing.T) {
	profile := defaultProfile()
	profile.WeeklyRules = []domain.WeeklyRule{
		weekdayRule(1, "11:00", "14:00"),
		weekdayRule(1, "09:00", "12:00"),
	}
	uc := newTestUseCase(profile, defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)

	// Слитое окно 09:00-14:00 даёт 5 часовых слотов без дублей
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, testMonday.Add(9*time.Hour), resp.Slots[0].StartUTC)
	assert.Equal(t, testMonday.Add(14*time.Hour), resp.Slots[4].EndUTC)
}

func TestExecute_AdjacentRulesMerge(t *testing.T) {
	profile := defaultProfile()
	profile.WeeklyRules = []domain.WeeklyRule{
		weekdayRule(1, "09:00", "12:00"),
		weekdayRule(1, "12:00", "15:00"),
	}
	uc := newTestUseCase(profile, defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 6)
}

func TestExecute_BlockedOverride(t *testing.T) {
	profile := defaultProfile()
	profile.DateOverrides = []domain.DateOverride{
		{Date: testMonday, IsBlocked: true},
	}
	uc := newTestUseCase(profile, defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_WindowOverrideReplacesRules(t *testing.T) {
	profile := defaultProfile()
	profile.DateOverrides = []domain.DateOverride{
		{Date: testMonday, StartTime: "10:00", EndTime: "12:00"},
	}
	uc := newTestUseCase(profile, defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)

	// Окно переопределения заменяет недельные правила, даже если даёт меньше слотов
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, testMonday.Add(10*time.Hour), resp.Slots[0].StartUTC)
	assert.Equal(t, testMonday.Add(11*time.Hour), resp.Slots[1].StartUTC)
}

func TestExecute_MinNoticeFilters(t *testing.T) {
	eventType := defaultEventType()
	eventType.MinNoticeMinutes = 120
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: eventType},
		&fakeProfileRepo{byID: defaultProfile()},
		// "Сейчас" - 10:30 утра самого понедельника
		passthroughTxManager{},
		&fixedTime{now: testMonday.Add(10*time.Hour + 30*time.Minute)},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)

	// Слоты раньше 12:30 отброшены; первый допустимый начинается в 13:00
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, testMonday.Add(13*time.Hour), resp.Slots[0].StartUTC)
}

func TestExecute_ConflictFiltering(t *testing.T) {
	eventType := defaultEventType()
	eventType.DurationMinutes = 30

	booking := &domain.Booking{
		ID:       100,
		HostID:   42,
		Status:   domain.StatusConfirmed,
		StartUTC: testMonday.Add(14 * time.Hour),
		EndUTC:   testMonday.Add(14*time.Hour + 30*time.Minute),
	}
	uc := newTestUseCase(defaultProfile(), eventType, []*domain.Booking{booking})

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		noOverlap := !slot.StartUTC.Before(booking.EndUTC) || !slot.EndUTC.After(booking.StartUTC)
		assert.True(t, noOverlap, "slot %s overlaps booking", slot.StartUTC)
	}

	// Слот, начинающийся ровно в момент окончания бронирования, доступен
	var found bool
	for _, slot := range resp.Slots {
		if slot.StartUTC.Equal(booking.EndUTC) {
			found = true
		}
	}
	assert.True(t, found, "back-to-back slot after booking must remain")
}

func TestExecute_BufferExpandsBlockedWindow(t *testing.T) {
	eventType := defaultEventType()
	eventType.DurationMinutes = 30
	eventType.BufferAfterMinutes = 15

	// Бронирование 14:00-14:30, буфер после 15 минут блокирует до 14:45
	booking := &domain.Booking{
		HostID:   42,
		Status:   domain.StatusConfirmed,
		StartUTC: testMonday.Add(14 * time.Hour),
		EndUTC:   testMonday.Add(14*time.Hour + 30*time.Minute),
	}
	uc := newTestUseCase(defaultProfile(), eventType, []*domain.Booking{booking})

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)

	starts := make(map[time.Time]bool)
	for _, slot := range resp.Slots {
		starts[slot.StartUTC] = true
	}

	// 14:00 занят, 14:30 пересекает буферное окно [14:00, 14:45), 15:00 свободен
	assert.False(t, starts[testMonday.Add(14*time.Hour)])
	assert.False(t, starts[testMonday.Add(14*time.Hour+30*time.Minute)])
	assert.True(t, starts[testMonday.Add(15*time.Hour)])
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	booking := &domain.Booking{
		HostID:   42,
		Status:   domain.StatusCancelled,
		StartUTC: testMonday.Add(10 * time.Hour),
		EndUTC:   testMonday.Add(11 * time.Hour),
	}
	uc := newTestUseCase(defaultProfile(), defaultEventType(), []*domain.Booking{booking})

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_MaxBookingsPerDay(t *testing.T) {
	eventType := defaultEventType()
	eventType.MaxBookingsPerDay = ptr.Ptr(1)

	booking := &domain.Booking{
		HostID:   42,
		Status:   domain.StatusConfirmed,
		StartUTC: testMonday.Add(9 * time.Hour),
		EndUTC:   testMonday.Add(10 * time.Hour),
	}
	tuesday := testMonday.AddDate(0, 0, 1)
	profile := defaultProfile()
	profile.WeeklyRules = append(profile.WeeklyRules,
		weekdayRule(2, "09:00", "11:00"))
	uc := newTestUseCase(profile, eventType, []*domain.Booking{booking})

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    tuesday,
	})
	require.NoError(t, err)

	// Понедельник исчерпал дневной лимит, вторник свободен
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartUTC.Before(tuesday), "slot %s on capped day", slot.StartUTC)
	}
	assert.NotEmpty(t, resp.Slots)
}

func TestExecute_DSTSpringForward(t *testing.T) {
	// В Берлине 29 марта 2026 часы переводятся с 02:00 на 03:00:
	// локальное окно 02:00-04:00 схлопывается в один час UTC [01:00, 02:00)
	profile := defaultProfile()
	profile.Timezone = "Europe/Berlin"
	springDay := utcDate(2026, time.March, 29) // воскресенье
	profile.WeeklyRules = []domain.WeeklyRule{
		weekdayRule(0, "02:00", "04:00"),
	}

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: defaultEventType()},
		&fakeProfileRepo{byID: profile},
		passthroughTxManager{},
		&fixedTime{now: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  springDay,
		RangeEnd:    springDay,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, time.Date(2026, time.March, 29, 1, 0, 0, 0, time.UTC), resp.Slots[0].StartUTC)
}

func TestExecute_HorizonClamp(t *testing.T) {
	uc := newTestUseCase(defaultProfile(), defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testNow.AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	horizon := utcDate(2026, time.September, 1).AddDate(0, 0, domain.DefaultRangeHorizonDays)
	assert.Equal(t, horizon, resp.RangeEnd)
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartUTC.After(horizon.AddDate(0, 0, 1)))
	}
}

func TestExecute_WindowShorterThanDuration(t *testing.T) {
	profile := defaultProfile()
	profile.WeeklyRules = []domain.WeeklyRule{
		weekdayRule(1, "09:00", "09:45"),
	}
	uc := newTestUseCase(profile, defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(defaultProfile(), defaultEventType(), nil)

	_, err := uc.Execute(context.Background(), Request{
		EventTypeID: 0,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), Request{
		EventTypeID:   1,
		RangeStart:    testMonday,
		RangeEnd:      testMonday,
		GuestTimezone: "Mars/Olympus",
	})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestExecute_EventTypeNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{err: eventtypestorage.ErrEventTypeNotFound},
		&fakeProfileRepo{},
		passthroughTxManager{},
		&fixedTime{now: testNow},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{
		EventTypeID: 99,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestExecute_FallsBackToDefaultProfile(t *testing.T) {
	eventType := defaultEventType()
	eventType.ProfileID = nil

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: eventType},
		&fakeProfileRepo{byUser: defaultProfile(), errByID: availabilitystorage.ErrProfileNotFound},
		passthroughTxManager{},
		&fixedTime{now: testNow},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_ProfileNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: defaultEventType()},
		&fakeProfileRepo{errByID: availabilitystorage.ErrProfileNotFound},
		passthroughTxManager{},
		&fixedTime{now: testNow},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestExecute_GuestTimezoneInResponse(t *testing.T) {
	uc := newTestUseCase(defaultProfile(), defaultEventType(), nil)

	resp, err := uc.Execute(context.Background(), Request{
		EventTypeID:   1,
		RangeStart:    testMonday,
		RangeEnd:      testMonday,
		GuestTimezone: "Asia/Tokyo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", resp.Timezone)

	resp, err = uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Equal(t, "UTC", resp.Timezone)
}

// recordingTxManager считает обращения к read-only транзакции
type recordingTxManager struct{ calls int }

func (m *recordingTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeTx) Commit() error                                                    { return nil }
func (fakeTx) Rollback() error                                                  { return nil }

func TestExecute_WrapsReadsInReadOnlyTransaction(t *testing.T) {
	txm := &recordingTxManager{}
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: defaultEventType()},
		&fakeProfileRepo{byID: defaultProfile()},
		txm,
		&fixedTime{now: testNow},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, txm.calls)
}

func TestExecute_JoinsAmbientTransaction(t *testing.T) {
	txm := &recordingTxManager{}
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: defaultEventType()},
		&fakeProfileRepo{byID: defaultProfile()},
		txm,
		&fixedTime{now: testNow},
		nopLogger{},
	)

	// Чтения внутри уже открытой транзакции не заворачиваются повторно
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})
	resp, err := uc.Execute(ctx, Request{
		EventTypeID: 1,
		RangeStart:  testMonday,
		RangeEnd:    testMonday,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
	assert.Equal(t, 0, txm.calls)
}
