package handler

import (
	"time"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetSettingsHandler(c *gin.Context, svc *usecase.SettingsService) {
	utils.Success(c, svc.Get())
}

// UpdateSettingsHandler stores new settings and re-arms every pending
// reminder so quiet hours changes take effect immediately.
func UpdateSettingsHandler(c *gin.Context, svc *usecase.SettingsService, board *usecase.BoardService) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid settings")
		return
	}

	settings := model.Settings{
		QuietHoursEnabled: req.QuietHoursEnabled,
		QuietStart:        req.QuietStart,
		QuietEnd:          req.QuietEnd,
		AICooldown:        time.Duration(req.AICooldownSeconds) * time.Second,
	}
	updated := svc.Update(settings)
	board.RescheduleAll()
	utils.Success(c, updated)
}
