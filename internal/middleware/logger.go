package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs every request and recovers from handler panics with a
// JSON 500 instead of a dropped connection.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				zap.L().Error("handler panic",
					zap.Any("panic", recovered),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				return
			}

			fields := []zap.Field{
				zap.Int("status", c.Writer.Status()),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.Duration("latency", time.Since(start)),
			}
			if rid := c.GetHeader("X-Request-ID"); rid != "" {
				fields = append(fields, zap.String("request_id", rid))
			}
			for _, err := range c.Errors {
				fields = append(fields, zap.Error(err.Err))
			}

			switch {
			case c.Writer.Status() >= http.StatusInternalServerError:
				zap.L().Error("request", fields...)
			case c.Writer.Status() >= http.StatusBadRequest:
				zap.L().Warn("request", fields...)
			default:
				zap.L().Info("request", fields...)
			}
		}()

		c.Next()
	}
}
