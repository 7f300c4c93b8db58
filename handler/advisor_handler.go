package handler

import (
	"errors"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func AdvisorHandler(c *gin.Context, svc *usecase.AdvisorService) {
	var req dto.AdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid advisor request")
		return
	}

	resp, remaining, err := svc.GetAdvice(c.Request.Context(), req.Mode)
	if err != nil {
		if errors.Is(err, usecase.ErrCooldownActive) {
			utils.TooManyRequests(c, "AI advisor is cooling down", gin.H{
				"retryAfterSeconds": int(remaining.Seconds()) + 1,
			})
			return
		}
		utils.BadGateway(c, "Không thể nhận được lời khuyên từ AI. Vui lòng kiểm tra lại kết nối mạng.")
		return
	}
	utils.Success(c, resp)
}

// ApplySuggestionsHandler commits a suggestion set the user has reviewed.
// Application is all-or-nothing.
func ApplySuggestionsHandler(c *gin.Context, svc *usecase.AdvisorService) {
	var req dto.ApplySuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid suggestions payload")
		return
	}
	if err := svc.Apply(req.Suggestions); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, gin.H{"applied": true})
}
