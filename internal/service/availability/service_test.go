package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeProfileRepo struct {
	profile        *domain.AvailabilityProfile
	getErr         error
	replacedRules  []domain.WeeklyRule
	replacedOvr    []domain.DateOverride
	updatedLabel   string
	updatedTZ      string
	replaceCalled  bool
	metadataCalled bool
}

func (f *fakeProfileRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilityProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) GetAllByUserID(_ context.Context, _ int64) ([]*domain.AvailabilityProfile, error) {
	return []*domain.AvailabilityProfile{f.profile}, nil
}

func (f *fakeProfileRepo) ReplaceSchedule(_ context.Context, _ int64, rules []domain.WeeklyRule, overrides []domain.DateOverride) error {
	f.replaceCalled = true
	f.replacedRules = rules
	f.replacedOvr = overrides
	return nil
}

func (f *fakeProfileRepo) UpdateProfile(_ context.Context, _ int64, label, timezone string) error {
	f.metadataCalled = true
	f.updatedLabel = label
	f.updatedTZ = timezone
	return nil
}

type fakeUserClient struct {
	user *userservice.User
	err  error
}

func (f *fakeUserClient) GetUserWithGracefulDegradation(_ context.Context, _ int64) (*userservice.User, error) {
	return f.user, f.err
}

// fakeTxManager выполняет fn напрямую
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProfile() *domain.AvailabilityProfile {
	return &domain.AvailabilityProfile{
		ID:        7,
		UserID:    42,
		Label:     "Working hours",
		Timezone:  "Europe/Berlin",
		IsDefault: true,
		WeeklyRules: []domain.WeeklyRule{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func validUpdateRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		UserID:    42,
		ProfileID: 7,
		Label:     "New hours",
		Timezone:  "America/New_York",
		WeeklyRules: []models.WeeklyRuleInput{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00"},
			{DayOfWeek: 3, StartTime: "09:00", EndTime: "13:00"},
		},
		DateOverrides: []models.DateOverrideInput{
			{Date: "2026-12-24", IsBlocked: true},
			{Date: "2026-12-23", StartTime: ptr.Ptr("10:00"), EndTime: ptr.Ptr("14:00")},
		},
	}
}

func newTestService(repo *fakeProfileRepo, client *fakeUserClient) *Service {
	return NewService(repo, client, fakeTxManager{}, nopLogger{})
}

func TestGetUserProfiles(t *testing.T) {
	repo := &fakeProfileRepo{profile: testProfile()}
	svc := newTestService(repo, &fakeUserClient{user: &userservice.User{ID: 42, IsActive: true}})

	resp, err := svc.GetUserProfiles(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Working hours", resp.Profiles[0].Label)
	assert.Len(t, resp.Profiles[0].WeeklyRules, 1)
}

func TestGetUserProfiles_UserNotFound(t *testing.T) {
	svc := newTestService(&fakeProfileRepo{profile: testProfile()},
		&fakeUserClient{err: userservice.ErrUserNotFound})

	_, err := svc.GetUserProfiles(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserProfiles_GracefulDegradation(t *testing.T) {
	// UserService недоступен: профили отдаются без проверки существования хоста
	repo := &fakeProfileRepo{profile: testProfile()}
	svc := newTestService(repo, &fakeUserClient{err: userservice.ErrServiceDegraded})

	resp, err := svc.GetUserProfiles(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestUpdateProfile(t *testing.T) {
	repo := &fakeProfileRepo{profile: testProfile()}
	svc := newTestService(repo, &fakeUserClient{})

	_, err := svc.UpdateProfile(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	assert.True(t, repo.metadataCalled)
	assert.True(t, repo.replaceCalled)
	assert.Equal(t, "New hours", repo.updatedLabel)
	assert.Equal(t, "America/New_York", repo.updatedTZ)
	assert.Len(t, repo.replacedRules, 2)
	assert.Len(t, repo.replacedOvr, 2)
}

func TestUpdateProfile_AccessDenied(t *testing.T) {
	repo := &fakeProfileRepo{profile: testProfile()}
	svc := newTestService(repo, &fakeUserClient{})

	req := validUpdateRequest()
	req.UserID = 99
	_, err := svc.UpdateProfile(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.replaceCalled)
}

func TestUpdateProfile_InvalidSchedule(t *testing.T) {
	repo := &fakeProfileRepo{profile: testProfile()}
	svc := newTestService(repo, &fakeUserClient{})

	tests := []struct {
		name   string
		mutate func(*models.UpdateProfileRequest)
	}{
		{"day out of range", func(r *models.UpdateProfileRequest) {
			r.WeeklyRules[0].DayOfWeek = 7
		}},
		{"start after end", func(r *models.UpdateProfileRequest) {
			r.WeeklyRules[0].StartTime = "18:00"
			r.WeeklyRules[0].EndTime = "10:00"
		}},
		{"bad time format", func(r *models.UpdateProfileRequest) {
			r.WeeklyRules[0].StartTime = "9am"
		}},
		{"blocked override with window", func(r *models.UpdateProfileRequest) {
			r.DateOverrides[0].StartTime = ptr.Ptr("10:00")
			r.DateOverrides[0].EndTime = ptr.Ptr("12:00")
		}},
		{"window override missing end", func(r *models.UpdateProfileRequest) {
			r.DateOverrides[1].EndTime = nil
		}},
		{"duplicate override date", func(r *models.UpdateProfileRequest) {
			r.DateOverrides = append(r.DateOverrides, models.DateOverrideInput{Date: "2026-12-24", IsBlocked: true})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpdateRequest()
			tt.mutate(req)
			_, err := svc.UpdateProfile(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestUpdateProfile_InvalidMetadata(t *testing.T) {
	repo := &fakeProfileRepo{profile: testProfile()}
	svc := newTestService(repo, &fakeUserClient{})

	req := validUpdateRequest()
	req.Label = "  "
	_, err := svc.UpdateProfile(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validUpdateRequest()
	req.Timezone = "Mars/Olympus"
	_, err = svc.UpdateProfile(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
