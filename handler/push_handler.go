package handler

import (
	"log"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func SubscribeHandler(c *gin.Context, repo *repository.SubscriptionsRepo) {
	var sub model.PushSubscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.BadRequest(c, "Invalid push subscription")
		return
	}
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		utils.BadRequest(c, "Subscription is missing endpoint or keys")
		return
	}

	if err := repo.SaveSubscription(c.Request.Context(), &sub); err != nil {
		log.Printf("failed to save push subscription: %v", err)
		utils.InternalError(c, "Failed to save subscription")
		return
	}
	utils.Created(c, gin.H{"subscribed": true})
}

func UnsubscribeHandler(c *gin.Context, repo *repository.SubscriptionsRepo) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid unsubscribe request")
		return
	}
	if err := repo.DeleteSubscription(c.Request.Context(), req.Endpoint); err != nil {
		log.Printf("failed to delete push subscription: %v", err)
		utils.InternalError(c, "Failed to remove subscription")
		return
	}
	utils.NoContent(c)
}

// PushScheduleHandler arms delivery timers for the given subscription.
// The task list comes from the client so the schedule reflects what the
// user currently sees, not a possibly stale server snapshot.
func PushScheduleHandler(c *gin.Context, scheduler *services.PushScheduler, settingsSvc *usecase.SettingsService) {
	var req dto.PushScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid push schedule request")
		return
	}
	if req.Subscription.Endpoint == "" {
		utils.BadRequest(c, "Subscription is missing endpoint")
		return
	}

	settings := settingsSvc.Get()
	scheduled := scheduler.Schedule(req.Subscription, req.Tasks, &settings)
	utils.Success(c, gin.H{"scheduled": scheduled})
}
