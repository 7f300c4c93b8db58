package services

import (
	"time"

	"main/model"
)

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// AddMonthsClamped advances t by the given number of months, clamping the day
// to the last day of the target month instead of rolling into the next one
// (31/01 becomes 28/02, or 29/02 in a leap year).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	month += time.Month(months)
	// normalize month overflow before clamping the day
	norm := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	if max := daysInMonth(norm.Year(), norm.Month()); day > max {
		day = max
	}
	return time.Date(norm.Year(), norm.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// NextOccurrence computes the due time of the occurrence that follows due
// under the given recurrence. ok is false for non-recurring tasks.
func NextOccurrence(r model.Recurrence, due time.Time) (time.Time, bool) {
	switch r {
	case model.RecurrenceDaily:
		return due.AddDate(0, 0, 1), true
	case model.RecurrenceWeekly:
		return due.AddDate(0, 0, 7), true
	case model.RecurrenceMonthly:
		return AddMonthsClamped(due, 1), true
	}
	return time.Time{}, false
}
