package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Capability names an action class a request must be authorized for.
// Today the only capability is staff access; routing every role check
// through RequireCapability keeps the door open for finer-grained roles
// without touching the handlers.
type Capability string

const CapabilityStaff Capability = "staff"

// Authorizer decides whether the current request carries a capability.
type Authorizer func(c *gin.Context) bool

// RequireCapability gates a route group on an Authorizer. Unauthorized
// requests get a flat 403, never a 500.
func RequireCapability(cap Capability, allowed Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff authorizes via the is_staff token claim set by ValidateToken.
func RequireStaff() gin.HandlerFunc {
	return RequireCapability(CapabilityStaff, func(c *gin.Context) bool {
		v, exists := c.Get("is_staff")
		if !exists {
			return false
		}
		isStaff, ok := v.(bool)
		return ok && isStaff
	})
}
