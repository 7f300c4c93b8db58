package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"main/model"
	"main/utils"
)

// NormalizeTags drops case-insensitive duplicates while preserving the
// first-seen casing and order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

// normalizeText lower-cases and collapses punctuation and whitespace so that
// "Mua sữa!" and "mua  sữa" compare equal.
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// minSubstringRunes is the floor under the containment rule: a short phrase
// has to be at least this long before "shorter contained in longer" counts
// as a duplicate.
const minSubstringRunes = 8

func similarTexts(a, b string) bool {
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	shorter, longer := na, nb
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	return utf8.RuneCountInString(shorter) >= minSubstringRunes && strings.Contains(longer, shorter)
}

// FindSimilar returns the first incomplete task in the category whose text is
// a likely duplicate of the given one, or nil. The rule is deliberately
// binary: normalized equality, or a ≥8-rune substring containment either way.
func (svc *BoardService) FindSimilar(text string, categoryID, excludeID int64) *model.Task {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.findSimilarLocked(text, categoryID, excludeID)
}

func (svc *BoardService) findSimilarLocked(text string, categoryID, excludeID int64) *model.Task {
	for _, t := range svc.board.Tasks {
		if t.ID == excludeID || t.CategoryID != categoryID || t.Completed {
			continue
		}
		if similarTexts(text, t.Text) {
			return t
		}
	}
	return nil
}

// Merge folds an incoming partial task into an existing one, field by field:
// longer text, earlier deadline, higher priority, union of tags, concatenated
// notes, smaller reminder offset, strongest recurrence.
func (svc *BoardService) Merge(targetID int64, incoming *model.Task) (*model.Task, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	target := svc.board.Task(targetID)
	if target == nil {
		return nil, ErrTaskNotFound
	}
	mergeInto(target, incoming)

	svc.scheduler.Schedule(target)
	utils.TrackBoardOperation("merge")
	svc.persist()
	return target, nil
}

func mergeInto(target *model.Task, incoming *model.Task) {
	if utf8.RuneCountInString(incoming.Text) > utf8.RuneCountInString(target.Text) {
		target.Text = incoming.Text
	}

	// earlier deadline wins; a missing deadline loses to any present one
	tDue, tOK := target.DueTime()
	iDue, iOK := incoming.DueTime()
	switch {
	case tOK && iOK:
		if iDue.Before(tDue) {
			target.DueDate = incoming.DueDate
		}
	case iOK:
		target.DueDate = incoming.DueDate
	}

	if model.PriorityRank(incoming.Priority) > model.PriorityRank(target.Priority) {
		target.Priority = incoming.Priority
	}

	target.Tags = NormalizeTags(append(append([]string{}, target.Tags...), incoming.Tags...))

	if incoming.Notes != "" {
		if target.Notes != "" {
			target.Notes = target.Notes + "\n\n" + incoming.Notes
		} else {
			target.Notes = incoming.Notes
		}
	}

	switch {
	case target.ReminderMinutes != nil && incoming.ReminderMinutes != nil:
		if *incoming.ReminderMinutes < *target.ReminderMinutes {
			target.ReminderMinutes = incoming.ReminderMinutes
		}
	case incoming.ReminderMinutes != nil:
		target.ReminderMinutes = incoming.ReminderMinutes
	}

	if model.RecurrenceRank(incoming.Recurrence) > model.RecurrenceRank(target.Recurrence) {
		target.Recurrence = incoming.Recurrence
	}

	if incoming.EstimatedMinutes > target.EstimatedMinutes {
		target.EstimatedMinutes = incoming.EstimatedMinutes
	}
}
