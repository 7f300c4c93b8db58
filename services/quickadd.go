package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"main/model"
)

// The quick-add grammar is parsed as an ordered pipeline of extractors, each
// removing its matched substring from the working text before the next one
// runs. The order is a contract: tags go first so a "#t14:00"-style token can
// never be read as a time, priority and recurrence markers are consumed
// before the notes clause swallows the rest of the line, and the category
// marker is consumed before bare time tokens are resolved.

var (
	tagPattern        = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)
	priorityPattern   = regexp.MustCompile(`(?i)(?:!(cao|trung|thấp|high|medium|low)\b|ưu tiên (cao|trung|thấp|high|medium|low)\b)`)
	recurrencePattern = regexp.MustCompile(`(?i)\b(?:lặp (ngày|tuần|tháng)|repeat (daily|weekly|monthly))\b`)
	estimatePattern   = regexp.MustCompile(`(?i)(?:~|ước|\buoc|\best)\s*(\d+)\s*(?:phút|min|p|m)\b`)
	notesPattern      = regexp.MustCompile(`(?i)\b(?:ghi chú|notes|note)\s*:\s*(.*)$`)
	quotedCatPattern  = regexp.MustCompile(`(?i)\bc:\s*"([^"]*)"`)
	bareCatPattern    = regexp.MustCompile(`(?i)\bc:([^#!,]+)`)
	reminderPattern   = regexp.MustCompile(`(?i)\b(?:nhắc|remind)\s*(\d+)\s*(?:phút|min|p|m)\b`)
	// \b in RE2 is ASCII-only, so units ending in a Vietnamese letter must
	// not carry a trailing boundary
	relativePattern = regexp.MustCompile(`(?i)\b(?:sau|trong|in)\s*(\d+)\s*(phút|giờ|ngày|(?:min|hours|hour|days|day|[pmhd])\b)`)
	todayPattern      = regexp.MustCompile(`(?i)\bhôm nay\b`)
	tomorrowPattern   = regexp.MustCompile(`(?i)(?:\bngày mai\b|\bmai\b)`)
	fullDatePattern   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	shortDatePattern  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
	timePattern       = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
)

// ParseQuickAdd extracts structured fields from one line of free text. It is
// pure: the only context is the reference time used to resolve dates.
func ParseQuickAdd(raw string, now time.Time) model.QuickAdd {
	q := model.QuickAdd{}
	rest := raw

	q.Tags, rest = extractTags(rest)
	q.Priority, rest = extractPriority(rest)
	q.Recurrence, rest = extractRecurrence(rest)
	q.EstimatedMinutes, rest = extractEstimate(rest)
	q.Notes, rest = extractNotes(rest)
	q.CategoryName, rest = extractCategory(rest)
	q.ReminderMinutes, rest = extractReminder(rest)
	q.DueDate, rest = extractDueDate(rest, now)

	q.Text = strings.Join(strings.Fields(rest), " ")
	return q
}

// cutMatch removes s[loc[0]:loc[1]], leaving a space so neighbouring words do
// not fuse.
func cutMatch(s string, loc []int) string {
	return s[:loc[0]] + " " + s[loc[1]:]
}

func extractTags(s string) ([]string, string) {
	var tags []string
	for {
		m := tagPattern.FindStringSubmatchIndex(s)
		if m == nil {
			break
		}
		tags = append(tags, strings.ToLower(s[m[2]:m[3]]))
		s = cutMatch(s, m[:2])
	}
	return tags, s
}

func extractPriority(s string) (model.Priority, string) {
	m := priorityPattern.FindStringSubmatchIndex(s)
	if m == nil {
		return "", s
	}
	word := ""
	if m[2] >= 0 {
		word = s[m[2]:m[3]]
	} else if m[4] >= 0 {
		word = s[m[4]:m[5]]
	}
	var p model.Priority
	switch strings.ToLower(word) {
	case "cao", "high":
		p = model.PriorityHigh
	case "trung", "medium":
		p = model.PriorityMedium
	case "thấp", "low":
		p = model.PriorityLow
	}
	return p, cutMatch(s, m[:2])
}

func extractRecurrence(s string) (model.Recurrence, string) {
	m := recurrencePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return "", s
	}
	word := ""
	if m[2] >= 0 {
		word = s[m[2]:m[3]]
	} else if m[4] >= 0 {
		word = s[m[4]:m[5]]
	}
	var r model.Recurrence
	switch strings.ToLower(word) {
	case "ngày", "daily":
		r = model.RecurrenceDaily
	case "tuần", "weekly":
		r = model.RecurrenceWeekly
	case "tháng", "monthly":
		r = model.RecurrenceMonthly
	}
	return r, cutMatch(s, m[:2])
}

func extractEstimate(s string) (*int, string) {
	m := estimatePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return nil, s
	}
	n, err := strconv.Atoi(s[m[2]:m[3]])
	if err != nil || n < 0 {
		return nil, cutMatch(s, m[:2])
	}
	return &n, cutMatch(s, m[:2])
}

func extractNotes(s string) (string, string) {
	m := notesPattern.FindStringSubmatchIndex(s)
	if m == nil {
		return "", s
	}
	notes := strings.TrimSpace(s[m[2]:m[3]])
	return notes, s[:m[0]]
}

func extractCategory(s string) (string, string) {
	if m := quotedCatPattern.FindStringSubmatchIndex(s); m != nil {
		return strings.TrimSpace(s[m[2]:m[3]]), cutMatch(s, m[:2])
	}
	if m := bareCatPattern.FindStringSubmatchIndex(s); m != nil {
		return strings.TrimSpace(s[m[2]:m[3]]), cutMatch(s, m[:2])
	}
	return "", s
}

func extractReminder(s string) (*int, string) {
	m := reminderPattern.FindStringSubmatchIndex(s)
	if m == nil {
		return nil, s
	}
	n, err := strconv.Atoi(s[m[2]:m[3]])
	if err != nil || n < 0 {
		return nil, cutMatch(s, m[:2])
	}
	return &n, cutMatch(s, m[:2])
}

func extractDueDate(s string, now time.Time) (string, string) {
	var base time.Time
	haveBase := false

	if m := relativePattern.FindStringSubmatchIndex(s); m != nil {
		n, _ := strconv.Atoi(s[m[2]:m[3]])
		unit := strings.ToLower(s[m[4]:m[5]])
		switch unit {
		case "phút", "min", "p", "m":
			base = now.Add(time.Duration(n) * time.Minute)
		case "giờ", "hours", "hour", "h":
			base = now.Add(time.Duration(n) * time.Hour)
		default: // ngày, days, day, d
			base = now.AddDate(0, 0, n)
		}
		haveBase = true
		s = cutMatch(s, m[:2])
	} else if m := todayPattern.FindStringIndex(s); m != nil {
		base = now
		haveBase = true
		s = cutMatch(s, m)
	} else if m := tomorrowPattern.FindStringIndex(s); m != nil {
		base = now.AddDate(0, 0, 1)
		haveBase = true
		s = cutMatch(s, m)
	} else if m := fullDatePattern.FindStringSubmatchIndex(s); m != nil {
		day, _ := strconv.Atoi(s[m[2]:m[3]])
		month, _ := strconv.Atoi(s[m[4]:m[5]])
		year, _ := strconv.Atoi(s[m[6]:m[7]])
		if t, ok := calendarDate(year, month, day, now); ok {
			base = t
			haveBase = true
		}
		s = cutMatch(s, m[:2])
	} else if m := shortDatePattern.FindStringSubmatchIndex(s); m != nil {
		day, _ := strconv.Atoi(s[m[2]:m[3]])
		month, _ := strconv.Atoi(s[m[4]:m[5]])
		if t, ok := calendarDate(now.Year(), month, day, now); ok {
			base = t
			haveBase = true
		}
		s = cutMatch(s, m[:2])
	}

	// an explicit clock token overrides the time-of-day of whatever base was
	// found, or of "now" when only a time was given
	if m := timePattern.FindStringSubmatchIndex(s); m != nil {
		hour, _ := strconv.Atoi(s[m[2]:m[3]])
		minute, _ := strconv.Atoi(s[m[4]:m[5]])
		if !haveBase {
			base = now
			haveBase = true
		}
		base = time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, now.Location())
		s = cutMatch(s, m[:2])
	}

	if !haveBase {
		return "", s
	}
	return model.FormatDueDate(base), s
}

// calendarDate builds a date at now's time-of-day, rejecting impossible
// day/month combinations instead of letting them roll over.
func calendarDate(year, month, day int, now time.Time) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	if day > daysInMonth(year, time.Month(month)) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day,
		now.Hour(), now.Minute(), 0, 0, now.Location()), true
}
