package routes

import (
	"clinicbook/internal/handlers"
	"clinicbook/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the API surface. Admin routes re-check the caller's role
// server-side on every request.
func SetupRoutes(
	r *gin.RouterGroup,
	jwtSecret string,
	accountHandler *handlers.AccountHandler,
	bookingHandler *handlers.BookingHandler,
	rewardHandler *handlers.RewardHandler,
) {
	// Public routes
	r.POST("/accounts", accountHandler.CreateAccount)

	// Authenticated routes
	authed := r.Group("")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.GET("/accounts/me/referrals", accountHandler.GetMyReferrals)

		authed.POST("/bookings", bookingHandler.CreateBooking)
		authed.GET("/bookings", bookingHandler.ListMyBookings)
		authed.GET("/bookings/:id", bookingHandler.GetBooking)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/bookings", bookingHandler.ListAllBookings)
		admin.PUT("/bookings/:id/status", bookingHandler.UpdateBookingStatus)
		admin.DELETE("/bookings/:id", bookingHandler.DeleteBooking)

		admin.GET("/rewards", rewardHandler.ListRewards)
		admin.PUT("/rewards/:account_id/:booking_id", rewardHandler.ReviewReward)
	}
}
