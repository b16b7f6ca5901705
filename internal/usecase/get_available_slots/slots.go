package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// localWindow локальное окно доступности (стеночные часы в таймзоне профиля)
type localWindow struct {
	start types.TimeString
	end   types.TimeString
}

// generateCandidates генерирует окна-кандидаты для диапазона календарных дат
// [rangeStart, rangeEnd] включительно. Чистая функция правил, политики и времени:
// существующие бронирования здесь не учитываются (это работа фильтра конфликтов).
//
// Для каждой даты:
//  1. Заблокированное переопределение - дата пропускается целиком.
//  2. Переопределение с явным окном - оно ЗАМЕНЯЕТ недельные правила на дату,
//     даже если даёт меньше слотов (явная воля хоста).
//  3. Иначе - недельные правила дня, слитые в минимальный набор непересекающихся окон.
//
// Локальные окна конвертируются в UTC по таймзоне профиля, затем нарезаются на
// кандидаты длиной duration встык (шаг = длительность, без более мелкой сетки).
// Кандидаты раньше now + minNotice отбрасываются.
//
// Результат отсортирован по возрастанию начала, окна не пересекаются, каждый
// кандидат имеет длительность ровно duration
func generateCandidates(
	profile *domain.AvailabilityProfile,
	eventType *domain.EventType,
	rangeStart time.Time,
	rangeEnd time.Time,
	nowUTC time.Time,
) ([]Candidate, error) {
	duration := time.Duration(eventType.DurationMinutes) * time.Minute
	minStart := nowUTC.Add(time.Duration(eventType.MinNoticeMinutes) * time.Minute)

	candidates := make([]Candidate, 0)

	startDay := dateOnly(rangeStart)
	endDay := dateOnly(rangeEnd)

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		windows, err := windowsForDate(profile, day)
		if err != nil {
			return nil, err
		}

		for _, win := range windows {
			dayCandidates, err := expandWindow(day, win, profile.Timezone, duration, minStart)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, dayCandidates...)
		}
	}

	return candidates, nil
}

// windowsForDate возвращает локальные окна доступности на календарную дату
func windowsForDate(profile *domain.AvailabilityProfile, date time.Time) ([]localWindow, error) {
	if override := profile.OverrideForDate(date); override != nil {
		if override.IsBlocked {
			return nil, nil
		}
		if override.HasWindow() {
			return []localWindow{{start: override.StartTime, end: override.EndTime}}, nil
		}
		// Переопределение без окна и без блокировки - трактуем как блокировку:
		// хост явно снял доступность на дату
		return nil, nil
	}

	rules := profile.RulesForWeekday(int(date.Weekday()))
	if len(rules) == 0 {
		return nil, nil
	}

	windows := make([]localWindow, 0, len(rules))
	for _, rule := range rules {
		if err := rule.StartTime.Validate(); err != nil {
			return nil, err
		}
		if err := rule.EndTime.Validate(); err != nil {
			return nil, err
		}
		// Правила с нарушенным инвариантом start < end игнорируем
		if !rule.StartTime.IsBefore(rule.EndTime) {
			continue
		}
		windows = append(windows, localWindow{start: rule.StartTime, end: rule.EndTime})
	}

	return mergeWindows(windows), nil
}

// mergeWindows сливает пересекающиеся и смежные окна в минимальный набор
// непересекающихся (сортировка по началу + проход с расширением текущего окна)
func mergeWindows(windows []localWindow) []localWindow {
	if len(windows) <= 1 {
		return windows
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].start != windows[j].start {
			return windows[i].start.IsBefore(windows[j].start)
		}
		return windows[i].end.IsBefore(windows[j].end)
	})

	merged := make([]localWindow, 0, len(windows))
	current := windows[0]

	for _, win := range windows[1:] {
		// Смежные окна (end == start) тоже сливаются
		if win.start.IsAfter(current.end) {
			merged = append(merged, current)
			current = win
			continue
		}
		if win.end.IsAfter(current.end) {
			current.end = win.end
		}
	}

	return append(merged, current)
}

// expandWindow конвертирует локальное окно в UTC и нарезает на кандидаты
//
// Конвертация каждой границы выполняется отдельно, поэтому окно, пересекающее
// переход DST, сохраняет локальную стеночную семантику: его UTC длительность
// может отличаться от локальной
func expandWindow(
	date time.Time,
	win localWindow,
	zone string,
	duration time.Duration,
	minStart time.Time,
) ([]Candidate, error) {
	windowStart, err := tzconv.LocalToUTC(date, win.start, zone)
	if err != nil {
		return nil, err
	}
	windowEnd, err := tzconv.LocalToUTC(date, win.end, zone)
	if err != nil {
		return nil, err
	}

	// Окно короче длительности события не даёт ни одного кандидата
	candidates := make([]Candidate, 0)
	for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(duration) {
		if start.Before(minStart) {
			continue
		}
		candidates = append(candidates, Candidate{
			StartUTC: start,
			EndUTC:   start.Add(duration),
		})
	}

	return candidates, nil
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
