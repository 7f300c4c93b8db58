package usecase

import (
	"errors"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

// QuickAddResult reports what applying a parsed quick-add line did. Exactly
// one of Created / MergedInto / Duplicate is set: Duplicate means nothing was
// changed and the caller should ask the user to merge or keep both.
type QuickAddResult struct {
	Created    *model.Task `json:"created,omitempty"`
	MergedInto *model.Task `json:"mergedInto,omitempty"`
	Duplicate  *model.Task `json:"duplicate,omitempty"`
}

// ApplyQuickAdd turns a parsed line into a task. The parser only reports raw
// findings; the policies live here: a reminder offset without any due date
// becomes "due in N minutes, remind at due time", a named category is
// resolved or created, and a detected duplicate stops the insert until the
// user confirms a merge (confirmMerge) or an insert anyway (keepBoth).
func (svc *BoardService) ApplyQuickAdd(q model.QuickAdd, now time.Time, confirmMerge, keepBoth bool) (*QuickAddResult, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.New("task text is required")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	categoryID := svc.board.ActiveCategoryID
	if q.CategoryName != "" {
		categoryID = svc.ensureCategoryLocked(q.CategoryName).ID
	}

	task := &model.Task{
		Text:       text,
		CategoryID: categoryID,
		DueDate:    q.DueDate,
		Priority:   q.Priority,
		Tags:       NormalizeTags(q.Tags),
		Notes:      q.Notes,
		Recurrence: q.Recurrence,
	}
	if q.EstimatedMinutes != nil {
		task.EstimatedMinutes = *q.EstimatedMinutes
	}
	if q.ReminderMinutes != nil {
		if q.DueDate == "" {
			// "remind in N minutes" with no date: the reminder becomes the
			// deadline and fires exactly at due time
			task.DueDate = model.FormatDueDate(now.Add(time.Duration(*q.ReminderMinutes) * time.Minute))
			zero := 0
			task.ReminderMinutes = &zero
		} else {
			task.ReminderMinutes = q.ReminderMinutes
		}
	}
	task.Normalize()

	if dup := svc.findSimilarLocked(task.Text, categoryID, 0); dup != nil && !keepBoth {
		if !confirmMerge {
			dupCopy := *dup
			return &QuickAddResult{Duplicate: &dupCopy}, nil
		}
		mergeInto(dup, task)
		svc.scheduler.Schedule(dup)
		utils.TrackBoardOperation("merge")
		svc.persist()
		merged := *dup
		return &QuickAddResult{MergedInto: &merged}, nil
	}

	task.ID = utils.NextID()
	svc.board.Tasks = append(svc.board.Tasks, task)
	svc.scheduler.Schedule(task)
	utils.TrackBoardOperation("quick_add")
	svc.persist()
	created := *task
	return &QuickAddResult{Created: &created}, nil
}
