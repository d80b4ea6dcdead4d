package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/logging"
)

// RequestLogger writes one structured entry per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logging.Fields{
			constants.LogFieldMethod:  c.Request.Method,
			constants.LogFieldPath:    c.FullPath(),
			constants.LogFieldStatus:  c.Writer.Status(),
			constants.LogFieldLatency: time.Since(start).Milliseconds(),
		}
		if id := c.Param(constants.ParamGameID); id != "" {
			fields[constants.LogFieldGameID] = id
		}
		if c.Writer.Status() >= 500 {
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			logging.Error("request failed", err, fields)
			return
		}
		logging.Debug("request", fields)
	}
}
