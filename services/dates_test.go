package services

import (
	"testing"
	"time"

	"main/model"
)

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"EndOfJanuaryClampsToLeapFebruary",
			time.Date(2024, time.January, 31, 9, 0, 0, 0, time.Local),
			time.Date(2024, time.February, 29, 9, 0, 0, 0, time.Local),
		},
		{
			"EndOfJanuaryClampsToShortFebruary",
			time.Date(2025, time.January, 31, 9, 0, 0, 0, time.Local),
			time.Date(2025, time.February, 28, 9, 0, 0, 0, time.Local),
		},
		{
			"MidMonthIsUntouched",
			time.Date(2024, time.March, 15, 18, 30, 0, 0, time.Local),
			time.Date(2024, time.April, 15, 18, 30, 0, 0, time.Local),
		},
		{
			"DecemberRollsIntoNextYear",
			time.Date(2024, time.December, 31, 8, 0, 0, 0, time.Local),
			time.Date(2025, time.January, 31, 8, 0, 0, 0, time.Local),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddMonthsClamped(tc.in, 1)
			if !got.Equal(tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	due := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)

	if got, ok := NextOccurrence(model.RecurrenceDaily, due); !ok || !got.Equal(due.AddDate(0, 0, 1)) {
		t.Errorf("Expected next day for daily, got %v (ok=%v)", got, ok)
	}
	if got, ok := NextOccurrence(model.RecurrenceWeekly, due); !ok || !got.Equal(due.AddDate(0, 0, 7)) {
		t.Errorf("Expected next week for weekly, got %v (ok=%v)", got, ok)
	}
	if got, ok := NextOccurrence(model.RecurrenceMonthly, due); !ok || !got.Equal(time.Date(2024, time.April, 10, 9, 0, 0, 0, time.Local)) {
		t.Errorf("Expected next month for monthly, got %v (ok=%v)", got, ok)
	}
	if _, ok := NextOccurrence(model.RecurrenceNone, due); ok {
		t.Error("Expected no occurrence for a non-recurring task")
	}
}

func TestDueDateRoundTrip(t *testing.T) {
	s := "09/03/2024 18:45"
	parsed, err := model.ParseDueDate(s)
	if err != nil {
		t.Fatalf("Failed to parse due date: %v", err)
	}
	if got := model.FormatDueDate(parsed); got != s {
		t.Errorf("Expected round trip %q, got %q", s, got)
	}

	if _, err := model.ParseDueDate("2024-03-09 18:45"); err == nil {
		t.Error("Expected an error for an ISO-formatted date")
	}
}
