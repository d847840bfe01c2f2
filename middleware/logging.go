package middleware

import (
	"time"

	"school-meals-api/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request. Caller identity comes
// from the verified token when present; request bodies are never logged.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if id, ok := c.Get("userID"); ok {
			fields["user_id"] = id
		}
		config.Log.WithFields(fields).Info("request")
	}
}
