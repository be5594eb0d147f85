package middleware

import (
	"github.com/gin-gonic/gin"

	"crm-backend/internal/auth"
	apierrors "crm-backend/internal/errors"
)

// RequireAuth rejects requests without a fully bound context. A context with
// no profile attached counts as unauthenticated even if resolution ran.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rctx, ok := GetRequestContext(c)
		if !ok || !rctx.Authenticated() {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireOrgAdmin rejects requests whose context fails the org-admin
// predicate. Runs after RequireAuth.
func RequireOrgAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rctx, _ := GetRequestContext(c)
		if !auth.IsOrgAdmin(rctx) {
			apierrors.Forbidden(c, "No organization admin context")
			c.Abort()
			return
		}

		c.Next()
	}
}
