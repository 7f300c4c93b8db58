package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetStatsHandler serves the dashboard counters: tasks due today, overdue,
// pending, completed.
func GetStatsHandler(c *gin.Context, svc *usecase.BoardService) {
	utils.Success(c, svc.Stats())
}
