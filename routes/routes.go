package routes

import (
	"net/http"

	"lumiere/handlers"
	"lumiere/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerBundle groups the HTTP handlers wired in main.
type HandlerBundle struct {
	Booking *handlers.BookingHandler
	Staff   *handlers.StaffHandler
	Policy  *handlers.PolicyHandler
}

// RegisterRoutes registers all endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	RegisterBookingRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterPolicyRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", hb.Booking.CreateBooking)
		bookings.GET("", hb.Booking.ListBookings)
		bookings.GET("/slots", hb.Booking.AvailableSlots)
		bookings.GET("/:bookingID", hb.Booking.GetBooking)
		bookings.PUT("/:bookingID/reschedule", hb.Booking.RescheduleBooking)
		bookings.PUT("/:bookingID/cancel", hb.Booking.CancelBooking)
		bookings.PUT("/:bookingID/complete", hb.Booking.MarkCompleted)
		bookings.PUT("/:bookingID/payment-status", hb.Booking.UpdatePaymentStatus)
	}
}

// RegisterStaffRoutes registers staff matching endpoints.
func RegisterStaffRoutes(r *gin.Engine, hb *HandlerBundle) {
	staff := r.Group("/api/staff")
	{
		staff.POST("", hb.Staff.RegisterStaff)
		staff.GET("/:staffID/eligible-bookings", hb.Staff.EligibleBookings)
		staff.PUT("/:staffID/assign/:bookingID", hb.Staff.AssignStaff)
	}
}

// RegisterPolicyRoutes registers booking policy admin endpoints.
func RegisterPolicyRoutes(r *gin.Engine, hb *HandlerBundle) {
	cfg := r.Group("/api/booking-config")
	{
		cfg.GET("", hb.Policy.GetConfig)
		cfg.PUT("", hb.Policy.UpdateConfig)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterMetricsRoute exposes prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
