package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/auth"
	"crm-backend/internal/constants"
	apierrors "crm-backend/internal/errors"
)

// ResolveContext runs the context resolver once per request, before any
// handler logic. Every resolution failure, whatever its kind, collapses to
// the same generic 403 so the response does not leak which lookup failed.
func ResolveContext(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		rctx, err := resolver.Resolve(auth.Credentials{
			Authorization: c.GetHeader(constants.HeaderAuthorization),
			APIKey:        c.GetHeader(constants.HeaderAPIKey),
			OrgHeader:     c.GetHeader(constants.HeaderOrg),
		})
		if err != nil {
			log.Printf("context resolution rejected: %v", err)
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		if rctx.OrgFromAPIKey {
			c.Set(constants.ContextKeyOrgID, rctx.OrgID())
		}

		c.Set(constants.ContextKeyRequestContext, rctx)
		c.Next()
	}
}

// GetRequestContext retrieves the resolved context for the current request.
func GetRequestContext(c *gin.Context) (*auth.RequestContext, bool) {
	value, exists := c.Get(constants.ContextKeyRequestContext)
	if !exists {
		return nil, false
	}

	rctx, ok := value.(*auth.RequestContext)
	return rctx, ok
}
