package handlers

import (
	"clinicbook/internal/models"
	"clinicbook/internal/services"
	"clinicbook/internal/utils"
	"clinicbook/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         log,
	}
}

// CreateBooking submits a booking for the authenticated account.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request models.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	accountID, ok := accountIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}
	request.AccountID = accountID

	// Patients cannot pick an initial status; staff set it later.
	request.Status = ""

	result, err := h.bookingService.Create(c.Request.Context(), &request)
	if err != nil {
		serviceErrorResponse(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", result)
}

// GetBooking retrieves one booking; soft-deleted bookings are still reachable
// here. Only the owner or an admin may read it.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, svcErr := h.bookingService.Get(c.Request.Context(), bookingID)
	if svcErr != nil {
		serviceErrorResponse(c, h.logger, svcErr)
		return
	}

	accountID, ok := accountIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}
	role, _ := c.Get("role")
	if booking.AccountID != accountID && role != string(models.AccountRoleAdmin) {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved", booking)
}

// ListMyBookings lists the authenticated account's non-deleted bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookings, err := h.bookingService.ListForAccount(c.Request.Context(), accountID)
	if err != nil {
		serviceErrorResponse(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved", bookings)
}

// ListAllBookings is the paginated admin listing; soft-deleted bookings are
// excluded.
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.ListAll(c.Request.Context(), params)
	if err != nil {
		serviceErrorResponse(c, h.logger, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(bookings),
	}
	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, meta)
}

// UpdateBookingStatus sets a booking's treatment status (admin only).
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, svcErr := h.bookingService.UpdateStatus(c.Request.Context(), bookingID, request.Status)
	if svcErr != nil {
		serviceErrorResponse(c, h.logger, svcErr)
		return
	}

	utils.SuccessResponse(c, "Booking status updated", booking)
}

// DeleteBooking soft-deletes a booking (admin only). Deleting twice fails.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	if svcErr := h.bookingService.SoftDelete(c.Request.Context(), bookingID); svcErr != nil {
		serviceErrorResponse(c, h.logger, svcErr)
		return
	}

	utils.SuccessResponse(c, "Booking deleted", nil)
}
