package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/engine"
	"github.com/ericogr/technonomicon/internal/ledger"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/registry"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

// errorResponse maps domain errors to a status and a stable message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, constants.ErrSessionNotFound
	case errors.Is(err, service.ErrAllyNotFound):
		return http.StatusNotFound, constants.ErrAllyNotFound
	case errors.Is(err, service.ErrNoPendingWarden):
		return http.StatusConflict, constants.ErrNoPendingWarden
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusNotImplemented, constants.ErrStorageDisabled
	case errors.Is(err, service.ErrUnsupportedState):
		return http.StatusBadRequest, constants.ErrUnsupportedState
	case errors.Is(err, ledger.ErrInvalidSnapshot):
		return http.StatusBadRequest, constants.ErrInvalidState
	case errors.Is(err, service.ErrNegativeDamage), errors.Is(err, ledger.ErrNegativeAmount):
		return http.StatusBadRequest, constants.ErrInvalidAmount
	case errors.Is(err, ledger.ErrUnknownSource):
		return http.StatusBadRequest, constants.ErrUnknownDataSource
	case errors.Is(err, ledger.ErrUnknownCollector):
		return http.StatusBadRequest, constants.ErrUnknownCollectorItem
	case errors.Is(err, ledger.ErrSurveillanceInactive):
		return http.StatusConflict, constants.ErrSurveillanceInactive
	case errors.Is(err, ledger.ErrInsufficientResources):
		return http.StatusPaymentRequired, constants.ErrInsufficientData
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest, constants.ErrInvalidComposition
	case errors.Is(err, registry.ErrKeyConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, constants.ErrInternal
	}
}

func respondError(c *gin.Context, err error) {
	status, msg := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logging.Error("request failed", err, logging.Fields{
			constants.LogFieldPath:    c.FullPath(),
			constants.LogFieldSession: c.Param(constants.ParamSessionID),
		})
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg, constants.JSONKeyDetails: err.Error()})
}

// attemptStatus is 200 for every resolved attempt, including failures; a
// rejected attempt uses the status of its error.
func attemptStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	status, _ := errorResponse(err)
	return status
}

// levelQuery reads the "level" query parameter; characters are at least
// level 1.
func levelQuery(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("level", "1")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// RequestLogger logs one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug("request", logging.Fields{
			constants.LogFieldMethod: c.Request.Method,
			constants.LogFieldPath:   c.Request.URL.Path,
			constants.LogFieldStatus: c.Writer.Status(),
			"duration_ms":            time.Since(start).Milliseconds(),
		})
	}
}
