package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbook/internal/pkg/response"
)

// RequestLogger logs every request with latency, and recovers panics into a
// clean 500 instead of tearing the connection down.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				zap.L().Error("panic recovered",
					zap.Any("panic", recovered),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.ByteString("stack", debug.Stack()),
				)
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				c.Abort()
				return
			}

			fields := []zap.Field{
				zap.Int("status", c.Writer.Status()),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.Duration("latency", time.Since(start)),
			}
			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("errors", c.Errors.String()))
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
