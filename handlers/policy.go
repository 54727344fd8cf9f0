package handlers

import (
	"errors"
	"net/http"

	"lumiere/models"
	"lumiere/services/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PolicyHandler exposes the booking policy for admin reads and updates.
type PolicyHandler struct {
	Store  *policy.Store
	Logger *zap.Logger
}

func NewPolicyHandler(store *policy.Store, logger *zap.Logger) *PolicyHandler {
	return &PolicyHandler{Store: store, Logger: logger}
}

// GetConfig handles GET /api/booking-config.
func (h *PolicyHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Get())
}

// UpdateConfig handles PUT /api/booking-config. Changes apply
// immediately to all subsequent booking operations.
func (h *PolicyHandler) UpdateConfig(c *gin.Context) {
	var input models.BookingConfig
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Store.Set(c.Request.Context(), input)
	if err != nil {
		var verr *policy.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"errorKind": "validation_error",
				"field":     verr.Field,
				"message":   verr.Message,
			})
			return
		}
		h.Logger.Error("failed to update booking config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking config"})
		return
	}

	h.Logger.Info("booking config updated",
		zap.Int("maxBookingsPerDay", updated.MaxBookingsPerDay),
		zap.Int("minAdvanceBookingDays", updated.MinAdvanceBookingDays),
		zap.Int("maxAdvanceBookingDays", updated.MaxAdvanceBookingDays))
	c.JSON(http.StatusOK, updated)
}
