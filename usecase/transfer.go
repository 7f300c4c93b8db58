package usecase

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

const exportVersion = 2

// ExportFile is the versioned on-disk shape offered to the user.
type ExportFile struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Data       *model.Board    `json:"data"`
	Settings   *model.Settings `json:"settings,omitempty"`
}

// ImportSummary describes what an accepted import did.
type ImportSummary struct {
	Mode       string      `json:"mode"` // board | task
	Categories int         `json:"categories,omitempty"`
	Tasks      int         `json:"tasks,omitempty"`
	Task       *model.Task `json:"task,omitempty"`
}

// TransferService implements the user-facing export/import files.
type TransferService struct {
	Board    *BoardService
	Settings *SettingsService
}

func NewTransferService(board *BoardService, settings *SettingsService) *TransferService {
	return &TransferService{Board: board, Settings: settings}
}

func (svc *TransferService) Export() *ExportFile {
	settings := svc.Settings.Get()
	return &ExportFile{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Data:       svc.Board.Snapshot(),
		Settings:   &settings,
	}
}

// importProbe sniffs which of the three accepted shapes the file is without
// committing to any of them.
type importProbe struct {
	Version      int             `json:"version"`
	Type         string          `json:"type"`
	CategoryName string          `json:"categoryName"`
	Task         json.RawMessage `json:"task"`
	Data         json.RawMessage `json:"data"`
	Categories   json.RawMessage `json:"categories"`
	Tasks        json.RawMessage `json:"tasks"`
}

// Import accepts a single-task share, the versioned export shape, or the
// legacy bare snapshot, tried in that fixed order. A file matching none of
// them, or failing to decode as the shape it matched, aborts the whole import
// with no partial effect.
func (svc *TransferService) Import(raw []byte) (*ImportSummary, error) {
	var probe importProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		utils.TrackError("import", "malformed_json")
		return nil, errors.New("file is not valid JSON")
	}

	switch {
	case probe.Type == "task":
		return svc.importTaskShare(raw)
	case len(probe.Data) > 0:
		return svc.importVersioned(raw)
	case len(probe.Categories) > 0 && len(probe.Tasks) > 0:
		return svc.importLegacy(raw)
	}

	utils.TrackError("import", "unknown_shape")
	return nil, errors.New("unrecognized import file format")
}

type taskShare struct {
	Version      int         `json:"version"`
	Type         string      `json:"type"`
	CategoryName string      `json:"categoryName"`
	Task         *model.Task `json:"task"`
}

func (svc *TransferService) importTaskShare(raw []byte) (*ImportSummary, error) {
	var share taskShare
	if err := json.Unmarshal(raw, &share); err != nil {
		utils.TrackError("import", "task_share_decode")
		return nil, errors.New("invalid task share file")
	}
	if share.Task == nil || strings.TrimSpace(share.Task.Text) == "" {
		return nil, errors.New("task share is missing the task")
	}
	name := strings.TrimSpace(share.CategoryName)
	if name == "" {
		return nil, errors.New("task share is missing the category name")
	}

	category, err := svc.Board.EnsureCategory(name)
	if err != nil {
		return nil, err
	}

	task := *share.Task
	task.CategoryID = category.ID
	task.Tags = NormalizeTags(task.Tags)
	added, err := svc.Board.AddTask(&task)
	if err != nil {
		return nil, err
	}
	return &ImportSummary{Mode: "task", Task: added}, nil
}

func (svc *TransferService) importVersioned(raw []byte) (*ImportSummary, error) {
	var file ExportFile
	if err := json.Unmarshal(raw, &file); err != nil {
		utils.TrackError("import", "versioned_decode")
		return nil, errors.New("invalid export file")
	}
	if file.Data == nil || len(file.Data.Categories) == 0 {
		return nil, errors.New("export file has no data")
	}

	svc.Board.Replace(file.Data)
	if file.Settings != nil {
		svc.Settings.Update(*file.Settings)
	}
	return &ImportSummary{
		Mode:       "board",
		Categories: len(file.Data.Categories),
		Tasks:      len(file.Data.Tasks),
	}, nil
}

func (svc *TransferService) importLegacy(raw []byte) (*ImportSummary, error) {
	var board model.Board
	if err := json.Unmarshal(raw, &board); err != nil {
		utils.TrackError("import", "legacy_decode")
		return nil, errors.New("invalid snapshot file")
	}
	if len(board.Categories) == 0 {
		return nil, errors.New("snapshot has no categories")
	}

	svc.Board.Replace(&board)
	return &ImportSummary{
		Mode:       "board",
		Categories: len(board.Categories),
		Tasks:      len(board.Tasks),
	}, nil
}
