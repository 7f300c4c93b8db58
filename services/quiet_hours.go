package services

import (
	"fmt"
	"time"

	"main/model"
)

// parseHHMM returns minutes since midnight for an "HH:mm" string.
func parseHHMM(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// InQuietHours reports whether t falls inside the [start, end) window.
// A window whose start is not before its end wraps midnight.
func InQuietHours(t time.Time, start, end string) bool {
	s, err := parseHHMM(start)
	if err != nil {
		return false
	}
	e, err := parseHHMM(end)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	if s < e {
		return minute >= s && minute < e
	}
	return minute >= s || minute < e
}

// DeferForQuietHours pushes t forward to the next quiet-hours end boundary
// when quiet hours are enabled and t falls inside the window; otherwise t is
// returned unchanged.
func DeferForQuietHours(t time.Time, settings *model.Settings) time.Time {
	if settings == nil || !settings.QuietHoursEnabled {
		return t
	}
	if !InQuietHours(t, settings.QuietStart, settings.QuietEnd) {
		return t
	}
	e, err := parseHHMM(settings.QuietEnd)
	if err != nil {
		return t
	}
	boundary := time.Date(t.Year(), t.Month(), t.Day(), e/60, e%60, 0, 0, t.Location())
	if !boundary.After(t) {
		boundary = boundary.AddDate(0, 0, 1)
	}
	return boundary
}
