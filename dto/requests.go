package dto

import (
	"main/model"
	"main/usecase"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type QuickAddRequest struct {
	Text         string `json:"text" binding:"required"`
	ConfirmMerge bool   `json:"confirmMerge"`
	KeepBoth     bool   `json:"keepBoth"`
}

type ReorderRequest struct {
	TaskID       int64  `json:"taskId" binding:"required"`
	BeforeTaskID *int64 `json:"beforeTaskId"`
}

type SnoozeRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1"`
}

type SettingsRequest struct {
	QuietHoursEnabled bool   `json:"quietHoursEnabled"`
	QuietStart        string `json:"quietStart" binding:"required,hhmm"`
	QuietEnd          string `json:"quietEnd" binding:"required,hhmm"`
	AICooldownSeconds int    `json:"aiCooldownSeconds" binding:"omitempty,min=0"`
}

type AdvisorRequest struct {
	Mode string `json:"mode" binding:"required,oneof=advice priority_order due_date_suggestions today_plan duration_estimates"`
}

type ApplySuggestionsRequest struct {
	Suggestions *usecase.Suggestions `json:"suggestions" binding:"required"`
}

type PushScheduleRequest struct {
	Subscription *model.PushSubscription `json:"subscription" binding:"required"`
	Tasks        []*model.Task           `json:"tasks" binding:"required"`
}
