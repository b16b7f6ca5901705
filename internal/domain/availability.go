package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AvailabilityProfile represents a host's named availability schedule
// Профиль принадлежит хосту; на него могут ссылаться несколько типов событий.
// У пользователя может быть ровно один профиль с IsDefault = true
type AvailabilityProfile struct {
	ID        int64
	UserID    int64
	Label     string
	Timezone  string // IANA идентификатор, например "America/New_York"
	IsDefault bool

	WeeklyRules   []WeeklyRule
	DateOverrides []DateOverride

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklyRule represents a recurring weekly availability window
// Времена локальные (стеночные часы) в таймзоне профиля. Инвариант: StartTime < EndTime.
// Правила одного дня могут пересекаться - перед использованием они сливаются
type WeeklyRule struct {
	ID        int64
	ProfileID int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DateOverride represents a one-off exception for a specific calendar date
// Если IsBlocked - весь день недоступен независимо от недельных правил.
// Если заданы времена - окно ЗАМЕНЯЕТ недельные правила на эту дату.
// Инвариант: не более одного переопределения на (профиль, дата)
type DateOverride struct {
	ID        int64
	ProfileID int64
	Date      time.Time        // календарная дата, время обнулено
	StartTime types.TimeString // пустое, если IsBlocked
	EndTime   types.TimeString
	IsBlocked bool
}

// HasWindow returns true if the override specifies an explicit availability window
func (o *DateOverride) HasWindow() bool {
	return !o.IsBlocked && !o.StartTime.IsZero() && !o.EndTime.IsZero()
}

// OverrideForDate возвращает переопределение для указанной календарной даты, если есть
func (p *AvailabilityProfile) OverrideForDate(date time.Time) *DateOverride {
	y, m, d := date.Date()
	for i := range p.DateOverrides {
		oy, om, od := p.DateOverrides[i].Date.Date()
		if oy == y && om == m && od == d {
			return &p.DateOverrides[i]
		}
	}
	return nil
}

// RulesForWeekday возвращает все недельные правила для дня недели (0 = Sunday)
func (p *AvailabilityProfile) RulesForWeekday(weekday int) []WeeklyRule {
	rules := make([]WeeklyRule, 0)
	for _, r := range p.WeeklyRules {
		if r.DayOfWeek == weekday {
			rules = append(rules, r)
		}
	}
	return rules
}
