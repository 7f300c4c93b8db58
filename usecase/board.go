package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"main/model"
	"main/services"
	"main/utils"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTaskNotFound     = errors.New("task not found")
)

// BoardPersister stores and loads the board snapshot.
type BoardPersister interface {
	Load(ctx context.Context) (*model.Board, error)
	Save(ctx context.Context, board *model.Board) error
}

// TaskScheduler arms and cancels reminder timers.
type TaskScheduler interface {
	Schedule(task *model.Task)
	Cancel(taskID int64)
}

// BoardService owns the in-memory board. Every mutation happens under a
// single lock and is written behind to the persister; a failed save is logged
// and the in-memory state stays authoritative for the session.
type BoardService struct {
	mu        sync.Mutex
	board     *model.Board
	repo      BoardPersister
	scheduler TaskScheduler
	sortMode  string // default | priority | dueDate
}

func NewBoardService(ctx context.Context, repo BoardPersister, scheduler TaskScheduler) (*BoardService, error) {
	board, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	reserveBoardIDs(board)
	return &BoardService{
		board:     board,
		repo:      repo,
		scheduler: scheduler,
		sortMode:  "default",
	}, nil
}

func reserveBoardIDs(board *model.Board) {
	for _, c := range board.Categories {
		utils.ReserveID(c.ID)
	}
	for _, t := range board.Tasks {
		utils.ReserveID(t.ID)
	}
}

// persist writes the snapshot behind the mutation. Failures are logged only:
// the in-memory board remains the source of truth.
func (svc *BoardService) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.repo.Save(ctx, svc.board); err != nil {
		log.Printf("board: persisting snapshot: %v", err)
	}
}

// --- Categories ---

// CategoryView is a category plus its pending-task count.
type CategoryView struct {
	model.Category
	PendingCount int  `json:"pendingCount"`
	Active       bool `json:"active"`
}

func (svc *BoardService) Categories() []CategoryView {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	views := make([]CategoryView, 0, len(svc.board.Categories))
	for _, c := range svc.board.Categories {
		pending := 0
		for _, t := range svc.board.Tasks {
			if t.CategoryID == c.ID && !t.Completed {
				pending++
			}
		}
		views = append(views, CategoryView{
			Category:     *c,
			PendingCount: pending,
			Active:       c.ID == svc.board.ActiveCategoryID,
		})
	}
	return views
}

func (svc *BoardService) AddCategory(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	cat := &model.Category{ID: utils.NextID(), Name: name}
	svc.board.Categories = append(svc.board.Categories, cat)
	utils.TrackBoardOperation("add_category")
	svc.persist()
	return cat, nil
}

// EnsureCategory resolves a category by case-insensitive exact name match and
// creates one with the given exact-case name when none exists.
func (svc *BoardService) EnsureCategory(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.ensureCategoryLocked(name), nil
}

func (svc *BoardService) ensureCategoryLocked(name string) *model.Category {
	for _, c := range svc.board.Categories {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	cat := &model.Category{ID: utils.NextID(), Name: name}
	svc.board.Categories = append(svc.board.Categories, cat)
	utils.TrackBoardOperation("add_category")
	svc.persist()
	return cat
}

// DeleteCategory removes a category and all its tasks. Deleting a reserved
// category is a no-op, reported via the return value, not an error.
func (svc *BoardService) DeleteCategory(id int64) bool {
	if model.ReservedCategoryID(id) {
		return false
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.board.Category(id) == nil {
		return false
	}

	kept := svc.board.Tasks[:0]
	for _, t := range svc.board.Tasks {
		if t.CategoryID == id {
			svc.scheduler.Cancel(t.ID)
			continue
		}
		kept = append(kept, t)
	}
	svc.board.Tasks = kept

	cats := svc.board.Categories[:0]
	for _, c := range svc.board.Categories {
		if c.ID != id {
			cats = append(cats, c)
		}
	}
	svc.board.Categories = cats

	if svc.board.ActiveCategoryID == id {
		svc.board.ActiveCategoryID = svc.board.Categories[0].ID
	}

	utils.TrackBoardOperation("delete_category")
	svc.persist()
	return true
}

func (svc *BoardService) SetActiveCategory(id int64) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.board.Category(id) == nil {
		return ErrCategoryNotFound
	}
	svc.board.ActiveCategoryID = id
	svc.persist()
	return nil
}

// --- Tasks ---

func (svc *BoardService) AddTask(task *model.Task) (*model.Task, error) {
	task.Text = strings.TrimSpace(task.Text)
	if task.Text == "" {
		return nil, errors.New("task text is required")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if task.CategoryID == 0 {
		task.CategoryID = svc.board.ActiveCategoryID
	}
	if svc.board.Category(task.CategoryID) == nil {
		return nil, ErrCategoryNotFound
	}

	task.ID = utils.NextID()
	task.Completed = false
	task.Tags = NormalizeTags(task.Tags)
	task.Normalize()

	svc.board.Tasks = append(svc.board.Tasks, task)
	svc.scheduler.Schedule(task)
	utils.TrackBoardOperation("add_task")
	svc.persist()
	return task, nil
}

// TaskPatch carries partial task updates; nil fields are untouched.
type TaskPatch struct {
	Text             *string
	CategoryID       *int64
	DueDate          *string
	Priority         *model.Priority
	Tags             []string
	Notes            *string
	ReminderMinutes  *int
	ClearReminder    bool
	Recurrence       *model.Recurrence
	EstimatedMinutes *int
}

func (svc *BoardService) UpdateTask(id int64, patch TaskPatch) (*model.Task, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	task := svc.board.Task(id)
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, errors.New("task text is required")
		}
		task.Text = text
	}
	if patch.CategoryID != nil {
		if svc.board.Category(*patch.CategoryID) == nil {
			return nil, ErrCategoryNotFound
		}
		task.CategoryID = *patch.CategoryID
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		task.Tags = NormalizeTags(patch.Tags)
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.ClearReminder {
		task.ReminderMinutes = nil
	} else if patch.ReminderMinutes != nil {
		task.ReminderMinutes = patch.ReminderMinutes
	}
	if patch.Recurrence != nil {
		task.Recurrence = *patch.Recurrence
	}
	if patch.EstimatedMinutes != nil {
		task.EstimatedMinutes = *patch.EstimatedMinutes
	}
	task.Normalize()

	svc.scheduler.Schedule(task)
	utils.TrackBoardOperation("update_task")
	svc.persist()
	return task, nil
}

func (svc *BoardService) DeleteTask(id int64) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	kept := svc.board.Tasks[:0]
	found := false
	for _, t := range svc.board.Tasks {
		if t.ID == id {
			found = true
			svc.scheduler.Cancel(id)
			continue
		}
		kept = append(kept, t)
	}
	svc.board.Tasks = kept
	if found {
		utils.TrackBoardOperation("delete_task")
		svc.persist()
	}
	return found
}

// ToggleComplete flips completion. Completing a recurring dated task spawns
// the next occurrence and updates the streak: on-time completion increments
// it, a late one resets it to zero. The completed task stays behind as
// history. The spawned occurrence, if any, is returned alongside the task.
func (svc *BoardService) ToggleComplete(id int64) (*model.Task, *model.Task, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	task := svc.board.Task(id)
	if task == nil {
		return nil, nil, ErrTaskNotFound
	}

	task.Completed = !task.Completed
	var spawned *model.Task

	if task.Completed {
		svc.scheduler.Cancel(task.ID)

		if due, ok := task.DueTime(); ok && task.Recurrence != model.RecurrenceNone {
			if time.Now().After(due) {
				task.Streak = 0
			} else {
				task.Streak++
			}

			if next, ok := services.NextOccurrence(task.Recurrence, due); ok {
				copyTask := *task
				copyTask.ID = utils.NextID()
				copyTask.Completed = false
				copyTask.DueDate = model.FormatDueDate(next)
				copyTask.Tags = append([]string(nil), task.Tags...)
				spawned = &copyTask
				svc.board.Tasks = append(svc.board.Tasks, spawned)
				svc.scheduler.Schedule(spawned)
			}
		}
	} else {
		svc.scheduler.Schedule(task)
	}

	utils.TrackBoardOperation("toggle_complete")
	svc.persist()
	return task, spawned, nil
}

// CyclePriority steps low → medium → high → low.
func (svc *BoardService) CyclePriority(id int64) (*model.Task, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	task := svc.board.Task(id)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	switch task.Priority {
	case model.PriorityLow:
		task.Priority = model.PriorityMedium
	case model.PriorityMedium:
		task.Priority = model.PriorityHigh
	default:
		task.Priority = model.PriorityLow
	}
	utils.TrackBoardOperation("cycle_priority")
	svc.persist()
	return task, nil
}

// Snooze defers the deadline by the given number of minutes; a task without a
// (valid) deadline is deferred relative to now.
func (svc *BoardService) Snooze(id int64, minutes int) (*model.Task, error) {
	if minutes <= 0 {
		return nil, errors.New("snooze minutes must be positive")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	task := svc.board.Task(id)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	base, ok := task.DueTime()
	if !ok {
		base = time.Now()
	}
	task.DueDate = model.FormatDueDate(base.Add(time.Duration(minutes) * time.Minute))
	svc.scheduler.Schedule(task)
	utils.TrackBoardOperation("snooze")
	svc.persist()
	return task, nil
}

// Reorder moves a task immediately before the target task, or to the end when
// no target is given. Any active sort mode falls back to manual order.
func (svc *BoardService) Reorder(taskID int64, beforeTaskID *int64) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	from := -1
	for i, t := range svc.board.Tasks {
		if t.ID == taskID {
			from = i
			break
		}
	}
	if from < 0 {
		return ErrTaskNotFound
	}

	moved := svc.board.Tasks[from]
	rest := append(svc.board.Tasks[:from:from], svc.board.Tasks[from+1:]...)

	if beforeTaskID == nil {
		svc.board.Tasks = append(rest, moved)
	} else {
		to := -1
		for i, t := range rest {
			if t.ID == *beforeTaskID {
				to = i
				break
			}
		}
		if to < 0 {
			return ErrTaskNotFound
		}
		rest = append(rest, nil)
		copy(rest[to+1:], rest[to:])
		rest[to] = moved
		svc.board.Tasks = rest
	}

	svc.sortMode = "default"
	utils.TrackBoardOperation("reorder")
	svc.persist()
	return nil
}

// ClearCompleted deletes every completed task in the active category.
func (svc *BoardService) ClearCompleted() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	removed := 0
	kept := svc.board.Tasks[:0]
	for _, t := range svc.board.Tasks {
		if t.CategoryID == svc.board.ActiveCategoryID && t.Completed {
			svc.scheduler.Cancel(t.ID)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	svc.board.Tasks = kept
	if removed > 0 {
		utils.TrackBoardOperation("clear_completed")
		svc.persist()
	}
	return removed
}

// --- Queries ---

func (svc *BoardService) SetSortMode(mode string) error {
	switch mode {
	case "default", "priority", "dueDate":
	default:
		return errors.New("unknown sort mode")
	}
	svc.mu.Lock()
	svc.sortMode = mode
	svc.mu.Unlock()
	return nil
}

func (svc *BoardService) SortMode() string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.sortMode
}

// Tasks lists the active category's tasks under the given completion filter
// (all|pending|completed) and the current sort mode. Returned tasks are
// copies and safe to use outside the lock.
func (svc *BoardService) Tasks(filter string) []model.Task {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var out []model.Task
	for _, t := range svc.board.Tasks {
		if t.CategoryID != svc.board.ActiveCategoryID {
			continue
		}
		switch filter {
		case "pending":
			if t.Completed {
				continue
			}
		case "completed":
			if !t.Completed {
				continue
			}
		}
		out = append(out, *t)
	}

	switch svc.sortMode {
	case "priority":
		sort.SliceStable(out, func(i, j int) bool {
			return model.PriorityRank(out[i].Priority) > model.PriorityRank(out[j].Priority)
		})
	case "dueDate":
		sort.SliceStable(out, func(i, j int) bool {
			di, iok := out[i].DueTime()
			dj, jok := out[j].DueTime()
			if iok != jok {
				return iok // dated tasks first
			}
			if !iok {
				return false
			}
			return di.Before(dj)
		})
	}
	return out
}

// Search matches text and notes case-insensitively across all categories.
func (svc *BoardService) Search(query string) []model.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	var out []model.Task
	for _, t := range svc.board.Tasks {
		if strings.Contains(strings.ToLower(t.Text), query) ||
			strings.Contains(strings.ToLower(t.Notes), query) {
			out = append(out, *t)
		}
	}
	return out
}

// Stats mirrors the dashboard counters: due today, overdue, pending, done.
type Stats struct {
	Today     int `json:"today"`
	Overdue   int `json:"overdue"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

func (svc *BoardService) Stats() Stats {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var s Stats
	for _, t := range svc.board.Tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		due, ok := t.DueTime()
		if !ok {
			continue
		}
		day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
		if day.Equal(today) {
			s.Today++
		} else if day.Before(today) {
			s.Overdue++
		}
	}
	return s
}

// Snapshot returns a deep copy of the board for export and startup scheduling.
func (svc *BoardService) Snapshot() *model.Board {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return copyBoard(svc.board)
}

// Replace swaps in an imported board wholesale: every pending reminder for
// the old tasks is cancelled, ids are reserved, and the new tasks are armed.
func (svc *BoardService) Replace(board *model.Board) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, t := range svc.board.Tasks {
		svc.scheduler.Cancel(t.ID)
	}

	board.Normalize()
	reserveBoardIDs(board)
	svc.board = board

	for _, t := range svc.board.Tasks {
		svc.scheduler.Schedule(t)
	}
	utils.TrackBoardOperation("replace_board")
	svc.persist()
}

// RescheduleAll re-arms every pending reminder. Called after quiet hours
// change so deferred delivery times are recomputed against the new window.
func (svc *BoardService) RescheduleAll() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, t := range svc.board.Tasks {
		svc.scheduler.Schedule(t)
	}
}

// FindTask returns a copy of the task with the given id, or nil.
func (svc *BoardService) FindTask(id int64) *model.Task {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	t := svc.board.Task(id)
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

type bulkUpdate struct {
	taskID int64
	patch  TaskPatch
}

// applyBulk validates that every referenced task exists before applying any
// patch, so a reviewed suggestion set lands atomically or not at all.
func (svc *BoardService) applyBulk(updates []bulkUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, u := range updates {
		if svc.board.Task(u.taskID) == nil {
			return ErrTaskNotFound
		}
	}
	for _, u := range updates {
		task := svc.board.Task(u.taskID)
		if u.patch.Priority != nil {
			task.Priority = *u.patch.Priority
		}
		if u.patch.DueDate != nil {
			task.DueDate = *u.patch.DueDate
			svc.scheduler.Schedule(task)
		}
		if u.patch.EstimatedMinutes != nil {
			task.EstimatedMinutes = *u.patch.EstimatedMinutes
		}
	}
	utils.TrackBoardOperation("apply_suggestions")
	svc.persist()
	return nil
}

func copyBoard(b *model.Board) *model.Board {
	out := &model.Board{
		Categories:       make([]*model.Category, 0, len(b.Categories)),
		Tasks:            make([]*model.Task, 0, len(b.Tasks)),
		ActiveCategoryID: b.ActiveCategoryID,
	}
	for _, c := range b.Categories {
		cc := *c
		out.Categories = append(out.Categories, &cc)
	}
	for _, t := range b.Tasks {
		tc := *t
		tc.Tags = append([]string(nil), t.Tags...)
		if t.ReminderMinutes != nil {
			rm := *t.ReminderMinutes
			tc.ReminderMinutes = &rm
		}
		out.Tasks = append(out.Tasks, &tc)
	}
	return out
}
