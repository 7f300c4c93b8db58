package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Work", "work", " urgent ", "", "WORK", "home"})
	want := []string{"Work", "urgent", "home"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected tag %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestSimilarTexts(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"CaseAndPunctuation", "Mua sữa!", "mua  sữa", true},
		{"LongSubstring", "chuẩn bị tài liệu họp", "chuẩn bị tài liệu họp quý ba", true},
		{"ShortSubstringIsNotEnough", "mua", "mua sữa cho em bé", false},
		{"Unrelated", "mua sữa", "rửa xe", false},
		{"Empty", "", "mua sữa", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := similarTexts(tc.a, tc.b); got != tc.want {
				t.Errorf("Expected similarTexts(%q, %q)=%v, got %v", tc.a, tc.b, tc.want, got)
			}
		})
	}
}

func TestFindSimilarScopes(t *testing.T) {
	svc, _ := newTestBoard(t)

	work, _ := svc.AddTask(&model.Task{Text: "Mua sữa"})
	other, _ := svc.AddTask(&model.Task{Text: "Mua sữa", CategoryID: model.CategoryPersonalID})
	doneTask, _ := svc.AddTask(&model.Task{Text: "Rửa xe đạp cũ"})
	svc.ToggleComplete(doneTask.ID)

	if got := svc.FindSimilar("mua sữa", model.CategoryWorkID, 0); got == nil || got.ID != work.ID {
		t.Errorf("Expected the work-category duplicate, got %v", got)
	}
	if got := svc.FindSimilar("mua sữa", model.CategoryPersonalID, 0); got == nil || got.ID != other.ID {
		t.Errorf("Expected the personal-category duplicate, got %v", got)
	}
	if got := svc.FindSimilar("mua sữa", model.CategoryWorkID, work.ID); got != nil {
		t.Errorf("Expected the excluded task to be skipped, got %v", got)
	}
	if got := svc.FindSimilar("Rửa xe đạp cũ", model.CategoryWorkID, 0); got != nil {
		t.Errorf("Expected completed tasks to be ignored, got %v", got)
	}
}

func TestMergePolicy(t *testing.T) {
	svc, _ := newTestBoard(t)

	early := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.Local)
	late := time.Date(2026, time.September, 2, 9, 0, 0, 0, time.Local)
	rem10, rem30 := 10, 30

	target, _ := svc.AddTask(&model.Task{
		Text:            "Mua sữa",
		DueDate:         model.FormatDueDate(late),
		Priority:        model.PriorityLow,
		Tags:            []string{"home"},
		Notes:           "loại không đường",
		ReminderMinutes: &rem30,
		Recurrence:      model.RecurrenceMonthly,
	})

	incoming := &model.Task{
		Text:             "Mua sữa cho cả tuần",
		DueDate:          model.FormatDueDate(early),
		Priority:         model.PriorityHigh,
		Tags:             []string{"Home", "shopping"},
		Notes:            "hai lít",
		ReminderMinutes:  &rem10,
		Recurrence:       model.RecurrenceWeekly,
		EstimatedMinutes: 20,
	}

	merged, err := svc.Merge(target.ID, incoming)
	if err != nil {
		t.Fatalf("Failed to merge: %v", err)
	}

	if merged.Text != "Mua sữa cho cả tuần" {
		t.Errorf("Expected the longer text to win, got %q", merged.Text)
	}
	if merged.DueDate != model.FormatDueDate(early) {
		t.Errorf("Expected the earlier deadline to win, got %q", merged.DueDate)
	}
	if merged.Priority != model.PriorityHigh {
		t.Errorf("Expected the higher priority to win, got %q", merged.Priority)
	}
	if len(merged.Tags) != 2 {
		t.Errorf("Expected the tag union [home shopping], got %v", merged.Tags)
	}
	if merged.Notes != "loại không đường\n\nhai lít" {
		t.Errorf("Expected concatenated notes, got %q", merged.Notes)
	}
	if merged.ReminderMinutes == nil || *merged.ReminderMinutes != 10 {
		t.Errorf("Expected the smaller reminder offset to win, got %v", merged.ReminderMinutes)
	}
	if merged.Recurrence != model.RecurrenceWeekly {
		t.Errorf("Expected the stronger recurrence to win, got %q", merged.Recurrence)
	}
	if merged.EstimatedMinutes != 20 {
		t.Errorf("Expected the larger estimate to win, got %d", merged.EstimatedMinutes)
	}

	if _, err := svc.Merge(999, incoming); err != ErrTaskNotFound {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestMergeMissingDeadlineLoses(t *testing.T) {
	svc, _ := newTestBoard(t)

	due := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.Local)
	target, _ := svc.AddTask(&model.Task{Text: "Gọi điện", DueDate: model.FormatDueDate(due)})

	merged, err := svc.Merge(target.ID, &model.Task{Text: "Gọi"})
	if err != nil {
		t.Fatalf("Failed to merge: %v", err)
	}
	if merged.DueDate != model.FormatDueDate(due) {
		t.Errorf("Expected the present deadline to survive, got %q", merged.DueDate)
	}
}

func TestApplyQuickAdd(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)

	t.Run("CreatesTaskWithCategory", func(t *testing.T) {
		svc, _ := newTestBoard(t)

		res, err := svc.ApplyQuickAdd(model.QuickAdd{
			Text:         "Dọn bếp",
			CategoryName: "Việc nhà",
			Priority:     model.PriorityHigh,
		}, now, false, false)
		if err != nil {
			t.Fatalf("Failed to apply: %v", err)
		}
		if res.Created == nil {
			t.Fatal("Expected a created task")
		}
		if res.Created.Priority != model.PriorityHigh {
			t.Errorf("Expected high priority, got %q", res.Created.Priority)
		}

		cat, err := svc.EnsureCategory("Việc nhà")
		if err != nil {
			t.Fatalf("Failed to look up category: %v", err)
		}
		if res.Created.CategoryID != cat.ID {
			t.Errorf("Expected the task in the named category, got %d", res.Created.CategoryID)
		}
	})

	t.Run("ReminderWithoutDueDateBecomesDeadline", func(t *testing.T) {
		svc, _ := newTestBoard(t)

		rem := 20
		res, err := svc.ApplyQuickAdd(model.QuickAdd{
			Text:            "Kiểm tra lò",
			ReminderMinutes: &rem,
		}, now, false, false)
		if err != nil {
			t.Fatalf("Failed to apply: %v", err)
		}
		want := model.FormatDueDate(now.Add(20 * time.Minute))
		if res.Created.DueDate != want {
			t.Errorf("Expected due date %q, got %q", want, res.Created.DueDate)
		}
		if res.Created.ReminderMinutes == nil || *res.Created.ReminderMinutes != 0 {
			t.Errorf("Expected the reminder to fire at due time, got %v", res.Created.ReminderMinutes)
		}
	})

	t.Run("DuplicateStopsTheInsert", func(t *testing.T) {
		svc, _ := newTestBoard(t)
		existing, _ := svc.AddTask(&model.Task{Text: "Mua sữa"})

		res, err := svc.ApplyQuickAdd(model.QuickAdd{Text: "mua sữa"}, now, false, false)
		if err != nil {
			t.Fatalf("Failed to apply: %v", err)
		}
		if res.Duplicate == nil || res.Duplicate.ID != existing.ID {
			t.Fatalf("Expected the duplicate to be reported, got %+v", res)
		}
		if got := len(svc.Tasks("all")); got != 1 {
			t.Errorf("Expected no new task, got %d tasks", got)
		}
	})

	t.Run("ConfirmMergeFoldsIn", func(t *testing.T) {
		svc, _ := newTestBoard(t)
		existing, _ := svc.AddTask(&model.Task{Text: "Mua sữa"})

		res, err := svc.ApplyQuickAdd(model.QuickAdd{
			Text:     "mua sữa",
			Priority: model.PriorityHigh,
		}, now, true, false)
		if err != nil {
			t.Fatalf("Failed to apply: %v", err)
		}
		if res.MergedInto == nil || res.MergedInto.ID != existing.ID {
			t.Fatalf("Expected a merge into the existing task, got %+v", res)
		}
		if res.MergedInto.Priority != model.PriorityHigh {
			t.Errorf("Expected the merge to raise the priority, got %q", res.MergedInto.Priority)
		}
		if got := len(svc.Tasks("all")); got != 1 {
			t.Errorf("Expected no new task after a merge, got %d tasks", got)
		}
	})

	t.Run("KeepBothInsertsAnyway", func(t *testing.T) {
		svc, _ := newTestBoard(t)
		svc.AddTask(&model.Task{Text: "Mua sữa"})

		res, err := svc.ApplyQuickAdd(model.QuickAdd{Text: "mua sữa"}, now, false, true)
		if err != nil {
			t.Fatalf("Failed to apply: %v", err)
		}
		if res.Created == nil {
			t.Fatal("Expected a created task")
		}
		if got := len(svc.Tasks("all")); got != 2 {
			t.Errorf("Expected both tasks on the board, got %d", got)
		}
	})

	t.Run("BlankTextIsRejected", func(t *testing.T) {
		svc, _ := newTestBoard(t)
		if _, err := svc.ApplyQuickAdd(model.QuickAdd{Text: "   "}, now, false, false); err == nil {
			t.Error("Expected an error for blank text")
		}
	})
}
