package handlers

import (
	"clinicbook/internal/config"
	"clinicbook/internal/models"
	"clinicbook/internal/services"
	"clinicbook/internal/utils"
	"clinicbook/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccountHandler struct {
	accountService services.AccountService
	config         *config.Config
	logger         *logger.Logger
}

func NewAccountHandler(accountService services.AccountService, cfg *config.Config, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		config:         cfg,
		logger:         log,
	}
}

// CreateAccount registers an account and assigns its referral code. A token is
// returned so the caller can act as the new account immediately.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var request models.CreateAccountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	// Role is never taken from the request body on this public endpoint.
	request.Role = models.AccountRolePatient

	account, err := h.accountService.CreateAccount(c.Request.Context(), &request)
	if err != nil {
		serviceErrorResponse(c, h.logger, err)
		return
	}

	token, err := utils.GenerateToken(account.ID, string(account.Role), account.Email, h.config.Security.JWTSecret)
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue token for new account")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", gin.H{
		"account": account,
		"token":   token,
	})
}

// GetMyReferrals returns the authenticated account's referral summary.
func (h *AccountHandler) GetMyReferrals(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	summary, err := h.accountService.GetReferralSummary(c.Request.Context(), accountID)
	if err != nil {
		serviceErrorResponse(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Referral summary retrieved", summary)
}

func accountIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("account_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	accountID, ok := value.(primitive.ObjectID)
	return accountID, ok
}

// serviceErrorResponse maps service errors onto the response envelope.
// Anything that is not a ServiceError is an internal failure.
func serviceErrorResponse(c *gin.Context, log *logger.Logger, err error) {
	if svcErr, ok := services.AsServiceError(err); ok {
		status := utils.HTTPStatusForCode(svcErr.Code)
		if len(svcErr.Details) > 0 {
			utils.ErrorResponseWithDetails(c, status, svcErr.Code, svcErr.Message, svcErr.Details)
		} else {
			utils.ErrorResponse(c, status, svcErr.Code, svcErr.Message)
		}
		return
	}

	log.WithError(err).Error("Unhandled service error")
	utils.InternalServerErrorResponse(c)
}
