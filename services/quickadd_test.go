package services

import (
	"strings"
	"testing"
	"time"

	"main/model"
)

var parseRef = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)

func TestParseQuickAddFullLine(t *testing.T) {
	q := ParseQuickAdd("Họp nhóm #work !cao mai 14:00 nhắc 15p", parseRef)

	if q.Text != "Họp nhóm" {
		t.Errorf("Expected text %q, got %q", "Họp nhóm", q.Text)
	}
	if len(q.Tags) != 1 || q.Tags[0] != "work" {
		t.Errorf("Expected tags [work], got %v", q.Tags)
	}
	if q.Priority != model.PriorityHigh {
		t.Errorf("Expected high priority, got %q", q.Priority)
	}
	if q.ReminderMinutes == nil || *q.ReminderMinutes != 15 {
		t.Errorf("Expected reminder of 15 minutes, got %v", q.ReminderMinutes)
	}
	want := model.FormatDueDate(time.Date(2024, time.March, 11, 14, 0, 0, 0, time.Local))
	if q.DueDate != want {
		t.Errorf("Expected due date %q, got %q", want, q.DueDate)
	}
}

func TestParseQuickAddPlainText(t *testing.T) {
	q := ParseQuickAdd("Mua sữa cho em bé", parseRef)

	if q.Text != "Mua sữa cho em bé" {
		t.Errorf("Expected text unchanged, got %q", q.Text)
	}
	if len(q.Tags) != 0 || q.Priority != "" || q.Recurrence != "" ||
		q.DueDate != "" || q.ReminderMinutes != nil || q.CategoryName != "" {
		t.Errorf("Expected no structured fields, got %+v", q)
	}
}

func TestParseQuickAddCategory(t *testing.T) {
	t.Run("BareCategoryStopsAtMarkers", func(t *testing.T) {
		q := ParseQuickAdd("Dọn bếp c:Việc nhà !cao", parseRef)
		if q.CategoryName != "Việc nhà" {
			t.Errorf("Expected category %q, got %q", "Việc nhà", q.CategoryName)
		}
		if q.Priority != model.PriorityHigh {
			t.Errorf("Expected high priority, got %q", q.Priority)
		}
		if q.Text != "Dọn bếp" {
			t.Errorf("Expected text %q, got %q", "Dọn bếp", q.Text)
		}
	})

	t.Run("QuotedCategoryKeepsPunctuation", func(t *testing.T) {
		q := ParseQuickAdd(`Gửi báo cáo c:"Dự án, Q2"`, parseRef)
		if q.CategoryName != "Dự án, Q2" {
			t.Errorf("Expected category %q, got %q", "Dự án, Q2", q.CategoryName)
		}
	})
}

func TestParseQuickAddPriorityWords(t *testing.T) {
	t.Run("VietnamesePhrase", func(t *testing.T) {
		q := ParseQuickAdd("Nộp thuế ưu tiên cao", parseRef)
		if q.Priority != model.PriorityHigh {
			t.Errorf("Expected high priority, got %q", q.Priority)
		}
		if q.Text != "Nộp thuế" {
			t.Errorf("Expected text %q, got %q", "Nộp thuế", q.Text)
		}
	})

	t.Run("BareWordIsNotAPriority", func(t *testing.T) {
		q := ParseQuickAdd("Leo núi cao nhất Việt Nam", parseRef)
		if q.Priority != "" {
			t.Errorf("Expected no priority, got %q", q.Priority)
		}
		if q.Text != "Leo núi cao nhất Việt Nam" {
			t.Errorf("Expected text unchanged, got %q", q.Text)
		}
	})

	t.Run("MarkerInsideNotesIsConsumed", func(t *testing.T) {
		q := ParseQuickAdd("Gọi khách ghi chú: gọi lại !cao nếu gấp", parseRef)
		if q.Priority != model.PriorityHigh {
			t.Errorf("Expected high priority, got %q", q.Priority)
		}
		if strings.Contains(q.Notes, "!cao") {
			t.Errorf("Expected marker removed from notes, got %q", q.Notes)
		}
	})
}

func TestParseQuickAddRecurrenceAndEstimate(t *testing.T) {
	q := ParseQuickAdd("Tập thể dục lặp ngày ~30 phút", parseRef)

	if q.Recurrence != model.RecurrenceDaily {
		t.Errorf("Expected daily recurrence, got %q", q.Recurrence)
	}
	if q.EstimatedMinutes == nil || *q.EstimatedMinutes != 30 {
		t.Errorf("Expected estimate of 30 minutes, got %v", q.EstimatedMinutes)
	}
	if q.Text != "Tập thể dục" {
		t.Errorf("Expected text %q, got %q", "Tập thể dục", q.Text)
	}

	q = ParseQuickAdd("Weekly review repeat weekly est 45 min", parseRef)
	if q.Recurrence != model.RecurrenceWeekly {
		t.Errorf("Expected weekly recurrence, got %q", q.Recurrence)
	}
	if q.EstimatedMinutes == nil || *q.EstimatedMinutes != 45 {
		t.Errorf("Expected estimate of 45 minutes, got %v", q.EstimatedMinutes)
	}
}

func TestParseQuickAddDueDates(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"TimeOnlyIsToday", "Họp 14:00", time.Date(2024, time.March, 10, 14, 0, 0, 0, time.Local)},
		{"Today", "Nộp đơn hôm nay 16:30", time.Date(2024, time.March, 10, 16, 30, 0, 0, time.Local)},
		{"Tomorrow", "Đi khám ngày mai 8:15", time.Date(2024, time.March, 11, 8, 15, 0, 0, time.Local)},
		{"ShortDate", "Sinh nhật 25/12", time.Date(2024, time.December, 25, 9, 0, 0, 0, time.Local)},
		{"FullDate", "Gia hạn 01/06/2025 10:00", time.Date(2025, time.June, 1, 10, 0, 0, 0, time.Local)},
		{"RelativeHours", "Gọi điện sau 2 giờ", parseRef.Add(2 * time.Hour)},
		{"RelativeMinutes", "Kiểm tra lò in 45 min", parseRef.Add(45 * time.Minute)},
		{"RelativeDays", "Đổ rác trong 3 ngày", parseRef.AddDate(0, 0, 3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := ParseQuickAdd(tc.input, parseRef)
			want := model.FormatDueDate(tc.want)
			if q.DueDate != want {
				t.Errorf("Expected due date %q, got %q", want, q.DueDate)
			}
		})
	}
}

func TestParseQuickAddImpossibleDate(t *testing.T) {
	q := ParseQuickAdd("Kế hoạch 31/02/2024", parseRef)
	if q.DueDate != "" {
		t.Errorf("Expected no due date for an impossible day, got %q", q.DueDate)
	}
	// the token is still consumed so it does not pollute the task text
	if strings.Contains(q.Text, "31/02") {
		t.Errorf("Expected date token removed from text, got %q", q.Text)
	}
}

func TestParseQuickAddTagBeforeTime(t *testing.T) {
	// tags are stripped first so a tag body can never be misread as a time
	q := ParseQuickAdd("Deploy #t14-00 15:30", parseRef)
	if len(q.Tags) != 1 || q.Tags[0] != "t14-00" {
		t.Errorf("Expected tag t14-00, got %v", q.Tags)
	}
	want := model.FormatDueDate(time.Date(2024, time.March, 10, 15, 30, 0, 0, time.Local))
	if q.DueDate != want {
		t.Errorf("Expected due date %q, got %q", want, q.DueDate)
	}
}

func TestParseQuickAddNotesSwallowTail(t *testing.T) {
	q := ParseQuickAdd("Đặt vé ghi chú: hỏi về chỗ ngồi gần cửa sổ 12/05", parseRef)
	if q.Notes != "hỏi về chỗ ngồi gần cửa sổ 12/05" {
		t.Errorf("Expected date kept inside notes, got %q", q.Notes)
	}
	if q.DueDate != "" {
		t.Errorf("Expected no due date when the date lives in notes, got %q", q.DueDate)
	}
	if q.Text != "Đặt vé" {
		t.Errorf("Expected text %q, got %q", "Đặt vé", q.Text)
	}
}
