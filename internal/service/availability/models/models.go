package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidRule возвращается при некорректном недельном правиле
	ErrInvalidRule = errors.New("invalid weekly rule")

	// ErrInvalidOverride возвращается при некорректном переопределении даты
	ErrInvalidOverride = errors.New("invalid date override")
)

// Request модели

// WeeklyRuleInput недельное правило во входных данных
type WeeklyRuleInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "HH:MM" локальное время профиля
	EndTime   string `json:"endTime"`   // "HH:MM" локальное время профиля
}

// DateOverrideInput переопределение даты во входных данных
type DateOverrideInput struct {
	Date      string  `json:"date"`                // "YYYY-MM-DD"
	StartTime *string `json:"startTime,omitempty"` // Окно, если дата не заблокирована
	EndTime   *string `json:"endTime,omitempty"`
	IsBlocked bool    `json:"isBlocked"`
}

// UpdateProfileRequest запрос на обновление профиля доступности
type UpdateProfileRequest struct {
	UserID        int64               `json:"userId"`
	ProfileID     int64               `json:"profileId"`
	Label         string              `json:"label"`
	Timezone      string              `json:"timezone"`
	WeeklyRules   []WeeklyRuleInput   `json:"weeklyRules"`
	DateOverrides []DateOverrideInput `json:"dateOverrides"`
}

// ToDomainRule конвертирует входное правило в domain модель
func (r *WeeklyRuleInput) ToDomainRule() (domain.WeeklyRule, error) {
	if r.DayOfWeek < domain.MinDayOfWeek || r.DayOfWeek > domain.MaxDayOfWeek {
		return domain.WeeklyRule{}, fmt.Errorf("%w: day of week %d out of range", ErrInvalidRule, r.DayOfWeek)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return domain.WeeklyRule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return domain.WeeklyRule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if !start.IsBefore(end) {
		return domain.WeeklyRule{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRule, start, end)
	}

	return domain.WeeklyRule{
		DayOfWeek: r.DayOfWeek,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// ToDomainOverride конвертирует входное переопределение в domain модель
func (o *DateOverrideInput) ToDomainOverride() (domain.DateOverride, error) {
	date, err := time.Parse(domain.DateFormat, o.Date)
	if err != nil {
		return domain.DateOverride{}, fmt.Errorf("%w: bad date %q", ErrInvalidOverride, o.Date)
	}

	override := domain.DateOverride{
		Date:      date,
		IsBlocked: o.IsBlocked,
	}

	if o.IsBlocked {
		if o.StartTime != nil || o.EndTime != nil {
			return domain.DateOverride{}, fmt.Errorf("%w: blocked date cannot carry a window", ErrInvalidOverride)
		}
		return override, nil
	}

	if o.StartTime == nil || o.EndTime == nil {
		return domain.DateOverride{}, fmt.Errorf("%w: non-blocked override requires a window", ErrInvalidOverride)
	}

	start, err := types.NewTimeStringFromString(*o.StartTime)
	if err != nil {
		return domain.DateOverride{}, fmt.Errorf("%w: %v", ErrInvalidOverride, err)
	}
	end, err := types.NewTimeStringFromString(*o.EndTime)
	if err != nil {
		return domain.DateOverride{}, fmt.Errorf("%w: %v", ErrInvalidOverride, err)
	}
	if !start.IsBefore(end) {
		return domain.DateOverride{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidOverride, start, end)
	}

	override.StartTime = start
	override.EndTime = end
	return override, nil
}

// Response модели

// WeeklyRuleResponse недельное правило в ответе
type WeeklyRuleResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DateOverrideResponse переопределение даты в ответе
type DateOverrideResponse struct {
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	IsBlocked bool    `json:"isBlocked"`
}

// ProfileResponse профиль доступности в ответе
type ProfileResponse struct {
	ID            int64                  `json:"id"`
	UserID        int64                  `json:"userId"`
	Label         string                 `json:"label"`
	Timezone      string                 `json:"timezone"`
	IsDefault     bool                   `json:"isDefault"`
	WeeklyRules   []WeeklyRuleResponse   `json:"weeklyRules"`
	DateOverrides []DateOverrideResponse `json:"dateOverrides"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ProfileListResponse список профилей доступности
type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Total    int               `json:"total"`
}

// FromDomainProfile конвертирует domain профиль в response модель
func FromDomainProfile(p *domain.AvailabilityProfile) *ProfileResponse {
	rules := make([]WeeklyRuleResponse, 0, len(p.WeeklyRules))
	for _, r := range p.WeeklyRules {
		rules = append(rules, WeeklyRuleResponse{
			DayOfWeek: r.DayOfWeek,
			StartTime: r.StartTime.String(),
			EndTime:   r.EndTime.String(),
		})
	}

	overrides := make([]DateOverrideResponse, 0, len(p.DateOverrides))
	for _, o := range p.DateOverrides {
		resp := DateOverrideResponse{
			Date:      o.Date.Format(domain.DateFormat),
			IsBlocked: o.IsBlocked,
		}
		if o.HasWindow() {
			start := o.StartTime.String()
			end := o.EndTime.String()
			resp.StartTime = &start
			resp.EndTime = &end
		}
		overrides = append(overrides, resp)
	}

	return &ProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Label:         p.Label,
		Timezone:      p.Timezone,
		IsDefault:     p.IsDefault,
		WeeklyRules:   rules,
		DateOverrides: overrides,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromDomainProfiles конвертирует список domain профилей
func FromDomainProfiles(profiles []*domain.AvailabilityProfile) *ProfileListResponse {
	result := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, *FromDomainProfile(p))
	}
	return &ProfileListResponse{Profiles: result, Total: len(result)}
}
