package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/logging"
	"github.com/Rukaro/HeartBreaker/internal/service"
)

// gameIDParam returns the validated game id path parameter. On failure the
// response has already been written.
func gameIDParam(c *gin.Context) (string, bool) {
	id := c.Param(constants.ParamGameID)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return "", false
	}
	return id, true
}

// writeServiceError maps a service error to a status code and message.
// Unknown errors are logged and reported with fallback.
func writeServiceError(c *gin.Context, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status, msg = http.StatusNotFound, constants.ErrGameNotFound
	case errors.Is(err, service.ErrGameOver):
		status, msg = http.StatusConflict, constants.ErrGameOver
	case errors.Is(err, service.ErrStaleGame):
		status, msg = http.StatusConflict, constants.ErrGameModified
	case errors.Is(err, service.ErrInvalidEnemyIndex):
		status, msg = http.StatusBadRequest, constants.ErrInvalidEnemyIndex
	case errors.Is(err, service.ErrInvalidCardIndex):
		status, msg = http.StatusBadRequest, constants.ErrInvalidCardIndex
	case errors.Is(err, service.ErrSpadeKingProtected):
		status, msg = http.StatusBadRequest, constants.ErrSpadeKingProtected
	case errors.Is(err, service.ErrCannotDefeat):
		status, msg = http.StatusBadRequest, constants.ErrCannotDefeat
	case errors.Is(err, service.ErrMissingExpression):
		status, msg = http.StatusBadRequest, constants.ErrMissingExpression
	case errors.Is(err, service.ErrExpressionRejected):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrSolveAborted):
		status, msg = http.StatusServiceUnavailable, constants.ErrSolveTimeout
	default:
		logging.Error(fallback, err, logging.Fields{
			constants.LogFieldPath:   c.FullPath(),
			constants.LogFieldGameID: c.Param(constants.ParamGameID),
		})
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}
