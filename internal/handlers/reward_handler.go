package handlers

import (
	"clinicbook/internal/models"
	"clinicbook/internal/services"
	"clinicbook/internal/utils"
	"clinicbook/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardHandler struct {
	rewardService services.RewardService
	logger        *logger.Logger
}

func NewRewardHandler(rewardService services.RewardService, log *logger.Logger) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
		logger:        log,
	}
}

// ListRewards returns every account's rewards flattened for review, with
// aggregate stats. An optional ?status= filter narrows the listing.
func (h *RewardHandler) ListRewards(c *gin.Context) {
	statusFilter := models.RewardStatus(c.Query("status"))

	views, stats, err := h.rewardService.List(c.Request.Context(), statusFilter)
	if err != nil {
		serviceErrorResponse(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Rewards retrieved", gin.H{
		"rewards": views,
		"stats":   stats,
	})
}

// ReviewReward approves or rejects one reward on a referrer's account.
func (h *RewardHandler) ReviewReward(c *gin.Context) {
	referrerID, err := primitive.ObjectIDFromHex(c.Param("account_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid account ID")
		return
	}
	bookingID, err := primitive.ObjectIDFromHex(c.Param("booking_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request models.ReviewRewardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	adminID, ok := accountIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	reward, svcErr := h.rewardService.Review(c.Request.Context(), referrerID, bookingID, request.Decision, adminID)
	if svcErr != nil {
		serviceErrorResponse(c, h.logger, svcErr)
		return
	}

	utils.SuccessResponse(c, "Reward reviewed", reward)
}
