package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key the middleware stores the
// resolved principal under.
const principalKey = "authPrincipal"

// Middleware runs the gate on every request. On success the principal
// is stored in the gin context; on anything else the chain continues
// unauthenticated. A Failure outcome collapses to the same fall-through
// as NoResult, preserving the no-explicit-denial contract.
func Middleware(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome := gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if outcome.Authenticated() {
			c.Set(principalKey, outcome.Principal)
		}
		c.Next()
	}
}

// RequireAuthenticated aborts with 401 when no principal was resolved
// for the request. Routes that allow anonymous access simply omit it.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the principal the middleware resolved
// for this request, if any.
func PrincipalFromContext(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*Principal)
	return principal, ok && principal != nil
}
