package handlers

import (
	"net/http"

	"lumiere/services/scheduling"
	"lumiere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondEngineError maps a scheduling engine error to its HTTP status.
// Internal errors are logged with full context and surfaced opaquely.
func respondEngineError(c *gin.Context, err error) {
	e, ok := scheduling.AsEngineError(err)
	if !ok {
		utils.GetLogger().Error("unexpected error from scheduling engine",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"errorKind": scheduling.KindInternal,
			"message":   "internal server error",
		})
		return
	}

	var status int
	switch e.Kind {
	case scheduling.KindValidation:
		status = http.StatusBadRequest
	case scheduling.KindPolicy:
		status = http.StatusUnprocessableEntity
	case scheduling.KindStateConflict:
		status = http.StatusConflict
	case scheduling.KindNotFound:
		status = http.StatusNotFound
	default:
		utils.GetLogger().Error("scheduling engine internal error",
			zap.String("path", c.FullPath()),
			zap.String("code", e.Code),
			zap.Error(err))
		status = http.StatusInternalServerError
	}
	c.JSON(status, e)
}
