package handlers

import (
	"net/http"

	"lumiere/models"
	"lumiere/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc    scheduling.Service
	Logger *zap.Logger
}

func NewBookingHandler(svc scheduling.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Svc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	h.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("date", booking.Date))
	c.JSON(http.StatusCreated, booking)
}

// RescheduleBooking handles PUT /api/bookings/:bookingID/reschedule.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var input models.RescheduleBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Svc.RescheduleBooking(c.Request.Context(), bookingID, input.NewDateTime)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	h.Logger.Info("booking rescheduled",
		zap.String("bookingId", booking.ID),
		zap.Time("newDateTime", booking.DateTime))
	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles PUT /api/bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")

	booking, err := h.Svc.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	h.Logger.Info("booking cancelled", zap.String("bookingId", booking.ID))
	c.JSON(http.StatusOK, booking)
}

// MarkCompleted handles PUT /api/bookings/:bookingID/complete.
func (h *BookingHandler) MarkCompleted(c *gin.Context) {
	bookingID := c.Param("bookingID")

	booking, err := h.Svc.MarkCompleted(c.Request.Context(), bookingID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdatePaymentStatus handles PUT /api/bookings/:bookingID/payment-status.
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var input models.UpdatePaymentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Svc.UpdatePaymentStatus(c.Request.Context(), bookingID, input.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBooking handles GET /api/bookings/:bookingID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Svc.GetBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings?date=YYYY-MM-DD.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter date is required"})
		return
	}

	bookings, err := h.Svc.ListBookingsByDate(c.Request.Context(), date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AvailableSlots handles GET /api/bookings/slots?date=YYYY-MM-DD.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter date is required"})
		return
	}

	slots, err := h.Svc.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}
