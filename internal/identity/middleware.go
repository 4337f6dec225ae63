package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/config"
)

const ownerContextKey = "identity.owner"

// Middleware resolves the authenticated owner for every /api request. Data
// operations never run without an identity; the 401 is the API-side analog of
// the client's redirect-to-login.
func Middleware(cfg config.AuthConfig) gin.HandlerFunc {
	verifier := JWT{Secret: []byte(cfg.Secret), TokenTTL: cfg.TokenTTL}

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		// Keep infra endpoints open.
		if p == "/healthz" || p == "/readyz" {
			c.Next()
			return
		}
		if !strings.HasPrefix(p, "/api/") {
			c.Next()
			return
		}

		if cfg.Disabled {
			owner := strings.TrimSpace(c.GetHeader("X-Owner"))
			if owner == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-Owner"})
				return
			}
			c.Set(ownerContextKey, owner)
			c.Next()
			return
		}

		auth := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := verifier.Verify(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		owner := strings.TrimSpace(claims.OwnerKey())
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no owner identity"})
			return
		}
		c.Set(ownerContextKey, owner)
		c.Next()
	}
}

// Owner returns the owner key resolved by Middleware.
func Owner(c *gin.Context) (string, bool) {
	v, ok := c.Get(ownerContextKey)
	if !ok {
		return "", false
	}
	owner, ok := v.(string)
	if !ok || owner == "" {
		return "", false
	}
	return owner, true
}
