package model

// QuickAdd is what the natural-language parser extracted from one input line.
// Zero values mean "not found"; the caller applies defaults and policies.
type QuickAdd struct {
	Text             string
	Tags             []string
	Priority         Priority   // "" when no marker was present
	Recurrence       Recurrence // "" when no marker was present
	EstimatedMinutes *int
	Notes            string
	CategoryName     string
	ReminderMinutes  *int
	DueDate          string // "dd/mm/yyyy HH:mm", "" when none resolved
}
