package middleware

import (
	"strings"

	"go-hrgql/internal/auth"
	"go-hrgql/internal/rbac"
	"go-hrgql/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the bearer token into a caller. It never aborts:
// a request without a token stays anonymous, and a token that fails
// verification is recorded so operations that require auth can report it.
func Authenticate(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.Request = c.Request.WithContext(rbac.WithAuthError(ctx, err))
			c.Next()
			return
		}

		caller, err := auth.CallerFromClaims(claims)
		if err != nil {
			c.Request = c.Request.WithContext(rbac.WithAuthError(ctx, err))
			c.Next()
			return
		}

		uid := caller.UserID.String()
		c.Set("user_id", uid)
		c.Set("role", caller.Role)

		ctx = rbac.WithCaller(ctx, caller)
		ctx = contextutil.WithUserID(ctx, uid)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
