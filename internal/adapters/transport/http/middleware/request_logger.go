package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func scrub(h http.Header) http.Header {
	clone := h.Clone()
	for k := range clone {
		lk := strings.ToLower(k)
		if strings.Contains(lk, "authorization") || strings.Contains(lk, "cookie") {
			clone[k] = []string{"[redacted]"}
		}
	}
	return clone
}

// RequestLogger logs every request with credentials redacted from the headers.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ce := log.Check(zap.DebugLevel, "incoming request"); ce != nil {
			hdr, _ := json.Marshal(scrub(c.Request.Header))
			ce.Write(
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("origin", c.GetHeader("Origin")),
				zap.ByteString("hdr", hdr),
			)
		}

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		}
		if id, ok := c.Get(userIDKey); ok {
			fields = append(fields, zap.Any("user_id", id))
		}

		for _, e := range c.Errors {
			log.Error("handler error", append(fields, zap.Error(e.Err))...)
		}

		if c.IsAborted() && len(c.Errors) == 0 {
			log.Warn("aborted", fields...)
			return
		}
		log.Info("completed", fields...)
	}
}
