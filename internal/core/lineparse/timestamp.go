package lineparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseTimestamp builds a UTC instant from the captured header tokens.
// Invalid combinations (31/02, 13th month, 25:00, 13 PM) are errors, not normalized
func parseTimestamp(day, month, year, hour, minute, second, meridiem string) (time.Time, error) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("day %q: %w", day, err)
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("month %q: %w", month, err)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("year %q: %w", year, err)
	}
	if len(year) == 2 {
		y += 2000
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return time.Time{}, fmt.Errorf("hour %q: %w", hour, err)
	}
	mi, err := strconv.Atoi(minute)
	if err != nil {
		return time.Time{}, fmt.Errorf("minute %q: %w", minute, err)
	}
	sec := 0
	if second != "" {
		if sec, err = strconv.Atoi(second); err != nil {
			return time.Time{}, fmt.Errorf("second %q: %w", second, err)
		}
	}

	if meridiem != "" {
		if h, err = to24h(h, meridiem); err != nil {
			return time.Time{}, err
		}
	}

	if mo < 1 || mo > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", mo)
	}
	if h > 23 || mi > 59 || sec > 59 {
		return time.Time{}, fmt.Errorf("time %02d:%02d:%02d out of range", h, mi, sec)
	}

	t := time.Date(y, time.Month(mo), d, h, mi, sec, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != mo {
		return time.Time{}, fmt.Errorf("invalid date %02d/%02d/%d", d, mo, y)
	}
	return t, nil
}

// to24h applies the 12-hour clock rules: 12 AM -> 0, h AM -> h, 12 PM -> 12, h PM -> h+12
func to24h(h int, meridiem string) (int, error) {
	if h < 1 || h > 12 {
		return 0, fmt.Errorf("hour %d invalid on a 12-hour clock", h)
	}
	pm := strings.HasPrefix(strings.ToLower(meridiem), "p")
	switch {
	case !pm && h == 12:
		return 0, nil
	case !pm:
		return h, nil
	case h == 12:
		return 12, nil
	default:
		return h + 12, nil
	}
}
