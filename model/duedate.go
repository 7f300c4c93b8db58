package model

import "time"

// DueDateLayout is the fixed zero-padded 24-hour form due dates are stored in.
const DueDateLayout = "02/01/2006 15:04"

// ParseDueDate parses the stored "dd/mm/yyyy HH:mm" form in local time.
func ParseDueDate(s string) (time.Time, error) {
	return time.ParseInLocation(DueDateLayout, s, time.Local)
}

// FormatDueDate renders t into the stored form.
func FormatDueDate(t time.Time) string {
	return t.Format(DueDateLayout)
}

// DueTime resolves a task's due date. ok is false when the task has no
// deadline or the stored string does not parse; a bad string is treated the
// same as no deadline.
func (t *Task) DueTime() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	due, err := ParseDueDate(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}
