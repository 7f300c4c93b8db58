package handler

import (
	"time"

	"main/dto"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// QuickAddHandler parses one free-text line and applies it to the board.
// When a likely duplicate exists and the client has not yet decided, the
// response is a conflict carrying both the parsed fields and the existing
// task so the user can choose merge or keep-both.
func QuickAddHandler(c *gin.Context, svc *usecase.BoardService) {
	var req dto.QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid quick-add data")
		return
	}

	parsed := services.ParseQuickAdd(req.Text, time.Now())
	result, err := svc.ApplyQuickAdd(parsed, time.Now(), req.ConfirmMerge, req.KeepBoth)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if result.Duplicate != nil {
		utils.Conflict(c, "A similar task already exists", gin.H{
			"existing": result.Duplicate,
			"parsed":   parsed,
		})
		return
	}
	if result.MergedInto != nil {
		utils.Success(c, gin.H{"merged": result.MergedInto})
		return
	}
	utils.Created(c, result.Created)
}
