package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	eventtypestorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Фейки

// fakeBookingRepo хранит созданные бронирования и отвергает пересечения
// с активными, имитируя exclusion constraint БД
type fakeBookingRepo struct {
	created   []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.created {
		if existing.IsActive() && b.StartUTC.Before(existing.EndUTC) && b.EndUTC.After(existing.StartUTC) {
			return nil, fmt.Errorf("%w: host %d", bookingstorage.ErrSlotTaken, b.HostID)
		}
	}
	stored := *b
	stored.ID = int64(len(f.created) + 1)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeEventTypeRepo struct {
	eventType *domain.EventType
	err       error
}

func (f *fakeEventTypeRepo) GetByID(_ context.Context, _ int64) (*domain.EventType, error) {
	return f.eventType, f.err
}

// fakeSlotsFinder отдаёт слоты, свободные от бронирований фейкового репозитория
type fakeSlotsFinder struct {
	repo  *fakeBookingRepo
	slots []get_available_slots.Slot
	err   error
}

func (f *fakeSlotsFinder) Execute(_ context.Context, _ get_available_slots.Request) (*get_available_slots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	free := make([]get_available_slots.Slot, 0, len(f.slots))
	for _, slot := range f.slots {
		taken := false
		for _, b := range f.repo.created {
			if b.IsActive() && slot.StartUTC.Before(b.EndUTC) && slot.EndUTC.After(b.StartUTC) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	return &get_available_slots.Response{Slots: free}, nil
}

// passthroughTxManager выполняет fn без настоящей транзакции
type passthroughTxManager struct {
	err error
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	slotStart = time.Date(2026, time.September, 14, 9, 0, 0, 0, time.UTC)
	testNow   = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
)

func testEventType() *domain.EventType {
	return &domain.EventType{
		ID:              1,
		HostID:          42,
		DurationMinutes: 60,
	}
}

func validRequest() Request {
	return Request{
		EventTypeID:   1,
		StartUTC:      slotStart,
		GuestName:     "Jane Doe",
		GuestEmail:    "jane@example.com",
		GuestTimezone: "Europe/Berlin",
	}
}

func newTestUseCase(eventType *domain.EventType) (*UseCase, *fakeBookingRepo) {
	repo := &fakeBookingRepo{}
	finder := &fakeSlotsFinder{
		repo: repo,
		slots: []get_available_slots.Slot{
			{StartUTC: slotStart, EndUTC: slotStart.Add(time.Hour)},
			{StartUTC: slotStart.Add(time.Hour), EndUTC: slotStart.Add(2 * time.Hour)},
		},
	}
	uc := NewUseCase(
		repo,
		&fakeEventTypeRepo{eventType: eventType},
		finder,
		&passthroughTxManager{},
		&fixedTime{now: testNow},
		nopLogger{},
	)
	return uc, repo
}

func TestExecute_CreatesBooking(t *testing.T) {
	uc, repo := newTestUseCase(testEventType())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.UID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, slotStart, resp.StartUTC)
	assert.Equal(t, slotStart.Add(time.Hour), resp.EndUTC)
	assert.Equal(t, int64(42), resp.HostID)
	require.Len(t, repo.created, 1)
}

func TestExecute_PastSlotRejectedBeforeTransaction(t *testing.T) {
	uc, repo := newTestUseCase(testEventType())

	req := validRequest()
	req.StartUTC = testNow.Add(-time.Hour)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.created)
}

func TestExecute_AcceptsMatchingEndUTC(t *testing.T) {
	uc, _ := newTestUseCase(testEventType())

	req := validRequest()
	req.EndUTC = req.StartUTC.Add(time.Hour)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, slotStart.Add(time.Hour), resp.EndUTC)
}

func TestExecute_RequiresConfirmationCreatesPending(t *testing.T) {
	eventType := testEventType()
	eventType.RequiresConfirmation = true
	uc, _ := newTestUseCase(eventType)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_SecondIdenticalRequestRejected(t *testing.T) {
	uc, repo := newTestUseCase(testEventType())

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторная проверка внутри транзакции не находит слот среди свободных
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	require.Len(t, repo.created, 1)
	assert.Equal(t, first.UID, repo.created[0].UID)
}

func TestExecute_SlotNotInGeneratedSet(t *testing.T) {
	uc, repo := newTestUseCase(testEventType())

	req := validRequest()
	req.StartUTC = slotStart.Add(15 * time.Minute) // не совпадает ни с одним слотом

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.created)
}

func TestExecute_ExclusionConstraintMapsToSlotNotAvailable(t *testing.T) {
	// Слот числится свободным, но вставка упирается в exclusion constraint -
	// гонка, которую закрывает БД
	eventType := testEventType()
	repo := &fakeBookingRepo{createErr: bookingstorage.ErrSlotTaken}
	finder := &fakeSlotsFinder{
		repo:  &fakeBookingRepo{},
		slots: []get_available_slots.Slot{{StartUTC: slotStart, EndUTC: slotStart.Add(time.Hour)}},
	}
	uc := NewUseCase(repo, &fakeEventTypeRepo{eventType: eventType}, finder,
		&passthroughTxManager{}, &fixedTime{now: testNow}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SerializationFailureMapsToSlotNotAvailable(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{eventType: testEventType()},
		&fakeSlotsFinder{repo: &fakeBookingRepo{}},
		&passthroughTxManager{err: fmt.Errorf("%w: retries exhausted", txmanager.ErrSerializationFailure)},
		&fixedTime{now: testNow},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_EventTypeNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeEventTypeRepo{err: eventtypestorage.ErrEventTypeNotFound},
		&fakeSlotsFinder{repo: &fakeBookingRepo{}},
		&passthroughTxManager{},
		&fixedTime{now: testNow},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(testEventType())

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"zero event type", func(r *Request) { r.EventTypeID = 0 }, ErrInvalidInput},
		{"zero start", func(r *Request) { r.StartUTC = time.Time{} }, ErrInvalidInput},
		{"empty name", func(r *Request) { r.GuestName = "  " }, ErrInvalidInput},
		{"empty email", func(r *Request) { r.GuestEmail = "" }, ErrInvalidInput},
		{"malformed email", func(r *Request) { r.GuestEmail = "not-an-email" }, ErrInvalidInput},
		{"missing timezone", func(r *Request) { r.GuestTimezone = "" }, ErrInvalidInput},
		{"bad timezone", func(r *Request) { r.GuestTimezone = "Mars/Olympus" }, ErrInvalidTimezone},
		{"mismatched end", func(r *Request) { r.EndUTC = r.StartUTC.Add(45 * time.Minute) }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
