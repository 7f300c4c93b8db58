package handler

import (
	"errors"
	"strconv"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid task id")
		return 0, false
	}
	return id, true
}

func GetTasksHandler(c *gin.Context, svc *usecase.BoardService) {
	if mode := c.Query("sort"); mode != "" {
		if err := svc.SetSortMode(mode); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}
	filter := c.DefaultQuery("filter", "all")
	utils.Success(c, gin.H{
		"tasks":    dto.ToTaskResponses(svc.Tasks(filter)),
		"sortMode": svc.SortMode(),
	})
}

func CreateTaskHandler(c *gin.Context, svc *usecase.BoardService) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid task data")
		return
	}

	task, err := svc.AddTask(req.ToTask())
	if err != nil {
		if errors.Is(err, usecase.ErrCategoryNotFound) {
			utils.NotFound(c, "Category not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Created(c, task)
}

func UpdateTaskHandler(c *gin.Context, svc *usecase.BoardService) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid task data")
		return
	}

	task, err := svc.UpdateTask(id, req.ToPatch())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrCategoryNotFound):
			utils.NotFound(c, "Category not found")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}
	utils.Success(c, task)
}

func DeleteTaskHandler(c *gin.Context, svc *usecase.BoardService) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if !svc.DeleteTask(id) {
		utils.NotFound(c, "Task not found")
		return
	}
	utils.NoContent(c)
}

func ToggleTaskHandler(c *gin.Context, svc *usecase.BoardService) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, spawned, err := svc.ToggleComplete(id)
	if err != nil {
		utils.NotFound(c, "Task not found")
		return
	}
	utils.Success(c, gin.H{"task": task, "spawned": spawned})
}

func CyclePriorityHandler(c *gin.Context, svc *usecase.BoardService) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := svc.CyclePriority(id)
	if err != nil {
		utils.NotFound(c, "Task not found")
		return
	}
	utils.Success(c, task)
}

func SnoozeTaskHandler(c *gin.Context, svc *usecase.BoardService) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid snooze data")
		return
	}
	task, err := svc.Snooze(id, req.Minutes)
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, task)
}

func ReorderTasksHandler(c *gin.Context, svc *usecase.BoardService) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid reorder data")
		return
	}
	if err := svc.Reorder(req.TaskID, req.BeforeTaskID); err != nil {
		utils.NotFound(c, "Task not found")
		return
	}
	utils.Success(c, gin.H{"sortMode": svc.SortMode()})
}

func ClearCompletedHandler(c *gin.Context, svc *usecase.BoardService) {
	utils.Success(c, gin.H{"removed": svc.ClearCompleted()})
}

func SearchTasksHandler(c *gin.Context, svc *usecase.BoardService) {
	query := c.Query("q")
	if query == "" {
		utils.Success(c, gin.H{"tasks": []dto.TaskResponse{}})
		return
	}
	utils.Success(c, gin.H{"tasks": dto.ToTaskResponses(svc.Search(query))})
}
