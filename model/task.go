package model

type Priority string
type Recurrence string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Task is a single item on the board. DueDate is kept in the fixed
// "dd/mm/yyyy HH:mm" form the UI has always stored; empty means no deadline.
type Task struct {
	ID               int64      `bson:"id" json:"id"`
	Text             string     `bson:"text" json:"text" binding:"required"`
	Completed        bool       `bson:"completed" json:"completed"`
	CategoryID       int64      `bson:"category_id" json:"categoryId"`
	DueDate          string     `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Priority         Priority   `bson:"priority" json:"priority"`
	Tags             []string   `bson:"tags,omitempty" json:"tags"`
	Notes            string     `bson:"notes,omitempty" json:"notes"`
	ReminderMinutes  *int       `bson:"reminder_minutes,omitempty" json:"reminderMinutes,omitempty"`
	Recurrence       Recurrence `bson:"recurrence" json:"recurrence"`
	Streak           int        `bson:"streak" json:"streak"`
	EstimatedMinutes int        `bson:"estimated_minutes,omitempty" json:"estimatedMinutes,omitempty"`
}

// PriorityRank orders priorities for sorting and merge resolution.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0
	}
	return 1
}

// RecurrenceRank orders recurrences by how often they fire; merge keeps the
// strongest one.
func RecurrenceRank(r Recurrence) int {
	switch r {
	case RecurrenceDaily:
		return 3
	case RecurrenceWeekly:
		return 2
	case RecurrenceMonthly:
		return 1
	}
	return 0
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ValidRecurrence(r Recurrence) bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Normalize fills the defaults for fields that older snapshots did not have.
func (t *Task) Normalize() {
	if !ValidPriority(t.Priority) {
		t.Priority = PriorityMedium
	}
	if !ValidRecurrence(t.Recurrence) {
		t.Recurrence = RecurrenceNone
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.ReminderMinutes != nil && *t.ReminderMinutes < 0 {
		t.ReminderMinutes = nil
	}
	if t.Streak < 0 {
		t.Streak = 0
	}
	if t.EstimatedMinutes < 0 {
		t.EstimatedMinutes = 0
	}
}
