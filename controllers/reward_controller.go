package controllers

import (
	"net/http"

	"sova/models"
	"sova/services"

	"github.com/gin-gonic/gin"
)

// RewardController - проверка уровня награды до оформления заказа
type RewardController struct{}

func NewRewardController() *RewardController {
	return &RewardController{}
}

// ValidateReward
// POST /validate-reward
func (rc *RewardController) ValidateReward(c *gin.Context) {
	var req models.ValidateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, services.ValidationResult{Valid: false, Message: "Invalid input."})
		return
	}

	result, err := services.ValidateReward(req.Title, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
