package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// identityContextKey is the gin context key the middleware stores the
// Identity under.
const identityContextKey = "auth_identity"

// Middleware returns a gin handler that validates the Bearer token and
// stores the caller's Identity in the request context. Role enforcement
// happens later, inside the lifecycle guard, so a stale queue page can
// never bypass it.
func Middleware(manager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		identity, err := IdentityFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFrom extracts the authenticated Identity from the gin context.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// SetIdentity stores an Identity in the gin context. Exposed for handler
// tests.
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(identityContextKey, identity)
}
