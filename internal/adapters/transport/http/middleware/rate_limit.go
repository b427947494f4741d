package middleware

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimitPerIP answers 429 once a client IP runs out of tokens.
func RateLimitPerIP(limiter *ratelimit.PerKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{Detail: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
