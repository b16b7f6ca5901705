package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking    *domain.Booking
	getErr     error
	cancelled  bool
	lastStatus domain.BookingStatus
}

func (f *fakeBookingRepo) GetByUID(_ context.Context, _ string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	if f.cancelled {
		b.Status = domain.StatusCancelled
	}
	if f.lastStatus != "" {
		b.Status = f.lastStatus
	}
	return &b, nil
}

func (f *fakeBookingRepo) GetByHostWithFilter(_ context.Context, _ domain.HostBookingsFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.lastStatus = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, _ string) error {
	f.cancelled = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:         1,
		UID:        "3f2c5a0e-8a5f-4f6a-9a3d-2b1c4d5e6f70",
		HostID:     42,
		Status:     domain.StatusConfirmed,
		StartUTC:   time.Date(2026, time.September, 14, 9, 0, 0, 0, time.UTC),
		EndUTC:     time.Date(2026, time.September, 14, 10, 0, 0, 0, time.UTC),
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
	}
}

func TestGetByUID(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByUID(context.Background(), testBooking().UID)
	require.NoError(t, err)
	assert.Equal(t, testBooking().UID, resp.UID)

	repo.getErr = bookingRepo.ErrBookingNotFound
	_, err = svc.GetByUID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByHost(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		UID:                testBooking().UID,
		UserID:             ptr.Ptr(int64(42)),
		CancellationReason: "host unavailable",
	})
	require.NoError(t, err)
	assert.True(t, repo.cancelled)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_ByGuestEmail(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := NewService(repo, nopLogger{})

	// Регистр email не учитывается
	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		UID:        testBooking().UID,
		GuestEmail: ptr.Ptr("JANE@example.com"),
	})
	require.NoError(t, err)
	assert.True(t, repo.cancelled)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		UID:        testBooking().UID,
		UserID:     ptr.Ptr(int64(99)),
		GuestEmail: ptr.Ptr("other@example.com"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.cancelled)

	// Без идентификации вообще
	_, err = svc.Cancel(context.Background(), &models.CancelBookingRequest{UID: testBooking().UID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: booking}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		UID:    booking.UID,
		UserID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestConfirmBooking(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusPending
	repo := &fakeBookingRepo{booking: booking}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ConfirmBooking(context.Background(), booking.UID, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Только хост может подтверждать
	_, err = svc.ConfirmBooking(context.Background(), booking.UID, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirmBooking_NotPending(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()} // confirmed
	svc := NewService(repo, nopLogger{})

	_, err := svc.ConfirmBooking(context.Background(), testBooking().UID, 42)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetHostBookings_AccessAndValidation(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{
		UserID: 42,
		HostID: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{
		UserID: 7,
		HostID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	from := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err = svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{
		UserID:   42,
		HostID:   42,
		StartUTC: &from,
		EndUTC:   &to,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	bad := "unknown"
	_, err = svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{
		UserID: 42,
		HostID: 42,
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
