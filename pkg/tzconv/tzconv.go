// Package tzconv конвертация между локальным временем (стеночные часы в IANA зоне)
// и абсолютными UTC инстантами.
//
// Правила разрешения переходов DST:
//   - Двойственное локальное время (перевод часов назад): выбирается более ранний
//     из двух возможных UTC инстантов.
//   - Несуществующее локальное время (перевод часов вперёд): сдвигается вперёд
//     на длину пропуска.
package tzconv

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidTimezone возвращается при неизвестном или недопустимом идентификаторе зоны
	ErrInvalidTimezone = errors.New("tzconv: invalid IANA timezone")
)

// LoadZone загружает таймзону по IANA идентификатору (например, "America/New_York")
// Фиксированные смещения и "Local" не принимаются - только имена из IANA базы
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	return loc, nil
}

// ValidateZone проверяет, что идентификатор зоны корректен
func ValidateZone(name string) error {
	_, err := LoadZone(name)
	return err
}

// LocalToUTC конвертирует календарную дату и локальное время в UTC инстант
// date задаёт только год/месяц/день, его собственные время и зона игнорируются
func LocalToUTC(date time.Time, local types.TimeString, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}

	minutes, err := local.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	year, month, day := date.Date()
	return resolveWallClock(year, month, day, minutes/60, minutes%60, loc).UTC(), nil
}

// UTCToLocal конвертирует UTC инстант в календарную дату и локальное время зоны
// Возвращаемая дата имеет обнулённое время в UTC - используется только как день
func UTCToLocal(instant time.Time, zone string) (time.Time, types.TimeString, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, "", err
	}

	localTime := instant.In(loc)
	year, month, day := localTime.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	return date, types.NewTimeString(localTime), nil
}

// resolveWallClock разрешает стеночное время (year, month, day, hh, mm) в зоне loc
// в конкретный инстант, детерминированно обрабатывая переходы DST.
//
// Алгоритм: интерпретируем стеночное время как UTC и итеративно вычитаем смещение
// зоны до неподвижной точки. Для несуществующего времени итерация колеблется между
// двумя кандидатами - берём более поздний (это эквивалентно сдвигу вперёд на длину
// пропуска). Для двойственного времени дополнительно пробуем сдвиг назад на
// величину DST перехода и берём более ранний инстант с тем же стеночным временем.
func resolveWallClock(year int, month time.Month, day, hh, mm int, loc *time.Location) time.Time {
	naive := time.Date(year, month, day, hh, mm, 0, 0, time.UTC)

	guess := naive
	var prev time.Time
	for i := 0; i < 4; i++ {
		_, offset := guess.In(loc).Zone()
		adjusted := naive.Add(-time.Duration(offset) * time.Second)
		if adjusted.Equal(guess) {
			break
		}
		prev = guess
		guess = adjusted
	}

	if !sameWallClock(guess, loc, day, hh, mm) {
		// Несуществующее время: guess и prev - два кандидата по разные стороны
		// перехода. Более поздний соответствует сдвигу вперёд на длину пропуска.
		if !prev.IsZero() && prev.After(guess) {
			guess = prev
		}
		return guess
	}

	// Время существует; при двойственности предпочитаем более ранний инстант.
	// Переходы DST почти везде 1 час, изредка 30 минут (Lord Howe).
	for _, shift := range []time.Duration{time.Hour, 30 * time.Minute} {
		earlier := guess.Add(-shift)
		if sameWallClock(earlier, loc, day, hh, mm) {
			return earlier
		}
	}

	return guess
}

// sameWallClock проверяет, что инстант t в зоне loc показывает стеночное время (day, hh, mm)
func sameWallClock(t time.Time, loc *time.Location, day, hh, mm int) bool {
	local := t.In(loc)
	return local.Day() == day && local.Hour() == hh && local.Minute() == mm
}
