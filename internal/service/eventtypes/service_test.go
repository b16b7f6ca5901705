package eventtypes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/eventtype"
)

type fakeEventTypeRepo struct {
	eventTypes []*domain.EventType
	listErr    error
	getErr     error
}

func (f *fakeEventTypeRepo) GetAllByHostID(_ context.Context, _ int64) ([]*domain.EventType, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.eventTypes, nil
}

func (f *fakeEventTypeRepo) GetByHostAndSlug(_ context.Context, _ int64, slug string) (*domain.EventType, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, et := range f.eventTypes {
		if et.Slug == slug {
			return et, nil
		}
	}
	return nil, eventTypeRepo.ErrEventTypeNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testEventTypes() []*domain.EventType {
	return []*domain.EventType{
		{ID: 1, HostID: 42, Title: "Intro call", Slug: "intro-call", DurationMinutes: 30},
		{ID: 2, HostID: 42, Title: "Consultation", Slug: "consultation", DurationMinutes: 60, RequiresConfirmation: true},
	}
}

func TestGetHostEventTypes(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{eventTypes: testEventTypes()}, nopLogger{})

	resp, err := svc.GetHostEventTypes(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "intro-call", resp.EventTypes[0].Slug)
	assert.Equal(t, 30, resp.EventTypes[0].DurationMinutes)
}

func TestGetHostEventTypes_Empty(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{}, nopLogger{})

	resp, err := svc.GetHostEventTypes(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.EventTypes)
}

func TestGetBySlug(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{eventTypes: testEventTypes()}, nopLogger{})

	resp, err := svc.GetBySlug(context.Background(), 42, "consultation")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
	assert.True(t, resp.RequiresConfirmation)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{eventTypes: testEventTypes()}, nopLogger{})

	_, err := svc.GetBySlug(context.Background(), 42, "missing")
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestGetBySlug_EmptySlug(t *testing.T) {
	svc := NewService(&fakeEventTypeRepo{eventTypes: testEventTypes()}, nopLogger{})

	_, err := svc.GetBySlug(context.Background(), 42, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
