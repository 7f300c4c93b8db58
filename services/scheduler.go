package services

import (
	"log"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// Notifier receives a reminder when its timer fires.
type Notifier interface {
	Notify(task *model.Task, body string)
}

// NotifyAt computes the instant a task's reminder should fire: due date minus
// the reminder offset, pushed out of the quiet-hours window when one is
// configured. ok is false when the task has no usable deadline.
func NotifyAt(task *model.Task, settings *model.Settings) (time.Time, bool) {
	due, ok := task.DueTime()
	if !ok {
		return time.Time{}, false
	}
	at := due
	if task.ReminderMinutes != nil {
		at = due.Add(-time.Duration(*task.ReminderMinutes) * time.Minute)
	}
	return DeferForQuietHours(at, settings), true
}

// ReminderScheduler keeps one cancellable timer per task id. Rescheduling
// always cancels the pending timer first, so a task can never have two live
// handles and never fires twice.
type ReminderScheduler struct {
	mu       sync.Mutex
	timers   map[int64]*time.Timer
	notifier Notifier
	settings func() *model.Settings
}

func NewReminderScheduler(notifier Notifier, settings func() *model.Settings) *ReminderScheduler {
	return &ReminderScheduler{
		timers:   make(map[int64]*time.Timer),
		notifier: notifier,
		settings: settings,
	}
}

// Schedule arms (or re-arms) the reminder for a task. Completed tasks, tasks
// without a deadline, and instants already in the past only cancel whatever
// was pending.
func (s *ReminderScheduler) Schedule(task *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(task.ID)
	if task.Completed {
		return
	}
	at, ok := NotifyAt(task, s.settings())
	if !ok {
		return
	}
	delay := time.Until(at)
	if delay <= 0 {
		return
	}

	fired := *task
	s.timers[task.ID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, fired.ID)
		utils.ScheduledReminders.Set(float64(len(s.timers)))
		s.mu.Unlock()

		body := `Đã đến hạn cho công việc: "` + fired.Text + `"`
		if fired.ReminderMinutes != nil && *fired.ReminderMinutes > 0 {
			body = `Sắp đến hạn: "` + fired.Text + `"`
		}
		s.notifier.Notify(&fired, body)
	})
	utils.ScheduledReminders.Set(float64(len(s.timers)))
}

// Cancel stops the pending reminder for a task id, if any.
func (s *ReminderScheduler) Cancel(taskID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(taskID)
}

func (s *ReminderScheduler) cancelLocked(taskID int64) {
	if t, ok := s.timers[taskID]; ok {
		t.Stop()
		delete(s.timers, taskID)
		utils.ScheduledReminders.Set(float64(len(s.timers)))
	}
}

// Pending reports how many timers are currently armed.
func (s *ReminderScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Reset cancels everything and re-arms reminders for the given tasks; used at
// startup after the snapshot is loaded.
func (s *ReminderScheduler) Reset(tasks []*model.Task) {
	s.mu.Lock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	for _, task := range tasks {
		s.Schedule(task)
	}
	log.Printf("reminder scheduler armed %d of %d tasks", s.Pending(), len(tasks))
}
