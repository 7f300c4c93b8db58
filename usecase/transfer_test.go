package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"main/model"
)

type memSettingsStore struct {
	settings *model.Settings
	saves    int
}

func (s *memSettingsStore) Load(ctx context.Context) (*model.Settings, error) {
	if s.settings == nil {
		return model.DefaultSettings(), nil
	}
	return s.settings, nil
}

func (s *memSettingsStore) Save(ctx context.Context, settings *model.Settings) error {
	s.settings = settings
	s.saves++
	return nil
}

func newTestTransfer(t *testing.T) (*TransferService, *BoardService) {
	t.Helper()
	board, _ := newTestBoard(t)
	settings, err := NewSettingsService(context.Background(), &memSettingsStore{})
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return NewTransferService(board, settings), board
}

func TestExportRoundTrip(t *testing.T) {
	svc, board := newTestTransfer(t)

	board.AddCategory("Errands")
	board.AddTask(&model.Task{Text: "Mua sữa"})

	file := svc.Export()
	if file.Version != exportVersion {
		t.Errorf("Expected version %d, got %d", exportVersion, file.Version)
	}
	if file.Settings == nil {
		t.Error("Expected settings in the export")
	}

	raw, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("Failed to marshal export: %v", err)
	}

	fresh, freshBoard := newTestTransfer(t)
	summary, err := fresh.Import(raw)
	if err != nil {
		t.Fatalf("Failed to import own export: %v", err)
	}
	if summary.Mode != "board" {
		t.Errorf("Expected board mode, got %q", summary.Mode)
	}
	if summary.Categories != 3 || summary.Tasks != 1 {
		t.Errorf("Expected 3 categories and 1 task, got %d and %d", summary.Categories, summary.Tasks)
	}
	if got := freshBoard.Search("sữa"); len(got) != 1 {
		t.Errorf("Expected the imported task to be findable, got %d matches", len(got))
	}
}

func TestImportTaskShare(t *testing.T) {
	svc, board := newTestTransfer(t)

	raw := []byte(`{
		"version": 1,
		"type": "task",
		"categoryName": "Shared",
		"task": {"text": "Đặt vé xem phim", "priority": "high", "tags": ["fun", "Fun"]}
	}`)

	summary, err := svc.Import(raw)
	if err != nil {
		t.Fatalf("Failed to import task share: %v", err)
	}
	if summary.Mode != "task" || summary.Task == nil {
		t.Fatalf("Expected a task summary, got %+v", summary)
	}
	if summary.Task.Text != "Đặt vé xem phim" {
		t.Errorf("Expected the shared task text, got %q", summary.Task.Text)
	}
	if len(summary.Task.Tags) != 1 {
		t.Errorf("Expected duplicate tags collapsed, got %v", summary.Task.Tags)
	}

	cat, err := board.EnsureCategory("Shared")
	if err != nil {
		t.Fatalf("Failed to look up category: %v", err)
	}
	if summary.Task.CategoryID != cat.ID {
		t.Errorf("Expected the task in the created category, got %d", summary.Task.CategoryID)
	}
}

func TestImportLegacySnapshot(t *testing.T) {
	svc, board := newTestTransfer(t)

	raw := []byte(`{
		"categories": [{"id": 1, "name": "Work"}, {"id": 2, "name": "Personal"}],
		"tasks": [{"id": 5, "text": "cũ nhưng vẫn dùng", "categoryId": 1}],
		"activeCategoryId": 2
	}`)

	summary, err := svc.Import(raw)
	if err != nil {
		t.Fatalf("Failed to import legacy snapshot: %v", err)
	}
	if summary.Mode != "board" || summary.Categories != 2 || summary.Tasks != 1 {
		t.Errorf("Expected a 2-category 1-task board, got %+v", summary)
	}
	if got := board.FindTask(5); got == nil {
		t.Error("Expected the legacy task to be restored")
	}
}

func TestImportFailsClosed(t *testing.T) {
	svc, board := newTestTransfer(t)
	board.AddTask(&model.Task{Text: "precious"})

	cases := []struct {
		name string
		raw  string
	}{
		{"NotJSON", `not json at all`},
		{"UnknownShape", `{"something": "else"}`},
		{"TaskShareWithoutTask", `{"type": "task", "categoryName": "X"}`},
		{"TaskShareWithoutCategory", `{"type": "task", "task": {"text": "hi"}}`},
		{"VersionedWithoutCategories", `{"version": 2, "data": {"categories": [], "tasks": []}}`},
		{"LegacyEmptyCategories", `{"categories": [], "tasks": [{"text": "x"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Import([]byte(tc.raw)); err == nil {
				t.Error("Expected the import to be rejected")
			}
		})
	}

	// nothing was touched by any of the rejected files
	if got := board.Search("precious"); len(got) != 1 {
		t.Errorf("Expected the board untouched after rejected imports, got %d matches", len(got))
	}
}

func TestImportVersionedAppliesSettings(t *testing.T) {
	svc, _ := newTestTransfer(t)

	file := ExportFile{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Data:       model.NewBoard(),
		Settings: &model.Settings{
			QuietHoursEnabled: true,
			QuietStart:        "21:00",
			QuietEnd:          "08:00",
			AICooldown:        time.Minute,
		},
	}
	raw, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if _, err := svc.Import(raw); err != nil {
		t.Fatalf("Failed to import: %v", err)
	}
	got := svc.Settings.Get()
	if !got.QuietHoursEnabled || got.QuietStart != "21:00" || got.QuietEnd != "08:00" {
		t.Errorf("Expected imported quiet hours, got %+v", got)
	}
}
