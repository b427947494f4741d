package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/gin-gonic/gin"
)

const (
	userKey   = "auth.user"
	userIDKey = "auth.user_id"
)

const unauthorizedDetail = "Invalid or expired token"

type Resolver interface {
	Resolve(ctx context.Context, kind model.TokenKind, raw string) (model.User, error)
}

// RequireToken resolves the bearer token of kind into a user and stores it
// on the context. Requests without a valid token stop with 401.
func RequireToken(r Resolver, kind model.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			Unauthorized(c)
			return
		}

		user, err := r.Resolve(c.Request.Context(), kind, raw)
		if err != nil {
			if customErrors.IsUnauthorized(err) {
				Unauthorized(c)
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// Unauthorized aborts with the opaque 401 used for every auth failure.
func Unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: unauthorizedDetail})
}

// CurrentUser returns the user stored by RequireToken.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
