package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"inkpost/errs"
	"inkpost/models"
	"inkpost/utils"
)

const (
	// TokenCookie carries the session token for browser clients.
	TokenCookie = "token"

	identityKey = "identity"
)

// AuthRequired rejects requests without a valid token.
func AuthRequired(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "no token provided")
			return
		}

		identity, err := jwt.ValidateJWT(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// AuthOptional attaches the caller's identity when a valid token is present
// and lets anonymous requests through otherwise.
func AuthOptional(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if identity, err := jwt.ValidateJWT(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, or nil for anonymous requests.
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(models.Identity)
	if !ok {
		return nil
	}
	return &identity
}

// extractToken looks at the bearer header, then the session cookie, then the
// query string of websocket upgrades.
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		return c.Query("token")
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message, "kind": errs.KindUnauthorized})
}
