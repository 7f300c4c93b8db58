package dto

import (
	"time"

	"main/model"
	"main/usecase"
)

type CreateTaskRequest struct {
	Text             string   `json:"text" binding:"required"`
	CategoryID       int64    `json:"categoryId"`
	DueDate          string   `json:"dueDate" binding:"omitempty,duedate"`
	Priority         string   `json:"priority" binding:"omitempty,priority"`
	Tags             []string `json:"tags"`
	Notes            string   `json:"notes"`
	ReminderMinutes  *int     `json:"reminderMinutes" binding:"omitempty,min=0"`
	Recurrence       string   `json:"recurrence" binding:"omitempty,recurrence"`
	EstimatedMinutes int      `json:"estimatedMinutes" binding:"omitempty,min=0"`
}

func (r *CreateTaskRequest) ToTask() *model.Task {
	return &model.Task{
		Text:             r.Text,
		CategoryID:       r.CategoryID,
		DueDate:          r.DueDate,
		Priority:         model.Priority(r.Priority),
		Tags:             r.Tags,
		Notes:            r.Notes,
		ReminderMinutes:  r.ReminderMinutes,
		Recurrence:       model.Recurrence(r.Recurrence),
		EstimatedMinutes: r.EstimatedMinutes,
	}
}

type UpdateTaskRequest struct {
	Text             *string   `json:"text"`
	CategoryID       *int64    `json:"categoryId"`
	DueDate          *string   `json:"dueDate" binding:"omitempty,duedate"`
	Priority         *string   `json:"priority" binding:"omitempty,priority"`
	Tags             *[]string `json:"tags"`
	Notes            *string   `json:"notes"`
	ReminderMinutes  *int      `json:"reminderMinutes" binding:"omitempty,min=0"`
	ClearReminder    bool      `json:"clearReminder"`
	Recurrence       *string   `json:"recurrence" binding:"omitempty,recurrence"`
	EstimatedMinutes *int      `json:"estimatedMinutes" binding:"omitempty,min=0"`
}

func (r *UpdateTaskRequest) ToPatch() usecase.TaskPatch {
	patch := usecase.TaskPatch{
		Text:             r.Text,
		CategoryID:       r.CategoryID,
		DueDate:          r.DueDate,
		Notes:            r.Notes,
		ReminderMinutes:  r.ReminderMinutes,
		ClearReminder:    r.ClearReminder,
		EstimatedMinutes: r.EstimatedMinutes,
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Tags != nil {
		patch.Tags = *r.Tags
	}
	if r.Recurrence != nil {
		rec := model.Recurrence(*r.Recurrence)
		patch.Recurrence = &rec
	}
	return patch
}

type TaskResponse struct {
	model.Task
	Overdue      bool   `json:"overdue"`
	TimeUntilDue string `json:"timeUntilDue,omitempty"`
}

// ToTaskResponse decorates a task with the dashboard's computed fields.
func ToTaskResponse(task model.Task) TaskResponse {
	resp := TaskResponse{Task: task}
	due, ok := task.DueTime()
	if !ok || task.Completed {
		return resp
	}
	if due.Before(time.Now()) {
		resp.Overdue = true
		resp.TimeUntilDue = "Overdue"
	} else {
		resp.TimeUntilDue = time.Until(due).Round(time.Minute).String()
	}
	return resp
}

func ToTaskResponses(tasks []model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = ToTaskResponse(t)
	}
	return responses
}
