package handlers

import (
	"net/http"

	"lumiere/models"
	"lumiere/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StaffHandler exposes staff registration and assignment over HTTP.
type StaffHandler struct {
	Matcher scheduling.Matcher
	Logger  *zap.Logger
}

func NewStaffHandler(matcher scheduling.Matcher, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{Matcher: matcher, Logger: logger}
}

// RegisterStaff handles POST /api/staff.
func (h *StaffHandler) RegisterStaff(c *gin.Context) {
	var input models.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	staff, err := h.Matcher.RegisterStaff(c.Request.Context(), input)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// EligibleBookings handles GET /api/staff/:staffID/eligible-bookings.
// An empty list means no bookings qualify; that is not an error.
func (h *StaffHandler) EligibleBookings(c *gin.Context) {
	bookings, err := h.Matcher.EligibleBookings(c.Request.Context(), c.Param("staffID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AssignStaff handles PUT /api/staff/:staffID/assign/:bookingID.
func (h *StaffHandler) AssignStaff(c *gin.Context) {
	staffID := c.Param("staffID")
	bookingID := c.Param("bookingID")

	staff, booking, err := h.Matcher.Assign(c.Request.Context(), staffID, bookingID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	h.Logger.Info("staff assigned",
		zap.String("staffId", staff.ID),
		zap.String("bookingId", booking.ID))
	c.JSON(http.StatusOK, gin.H{"staff": staff, "booking": booking})
}
