package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mahfuzul873/m873/internal/pkg/errcode"
	"github.com/mahfuzul873/m873/internal/pkg/response"
)

type RoleChecker interface {
	IsOwner(ctx context.Context, userID string) (bool, error)
}

// OwnerOnly guards the admin surface. Runs after JWTAuth.
func OwnerOnly(roles RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, _ := c.Get(ContextUserIDKey)
		userID, _ := value.(string)
		if userID == "" {
			response.Error(c, errcode.ErrUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		isOwner, err := roles.IsOwner(c.Request.Context(), userID)
		if err != nil || !isOwner {
			response.Error(c, errcode.ErrForbidden, "owner role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
