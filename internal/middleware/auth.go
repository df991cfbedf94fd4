package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/course-library/internal/token"
	"github.com/openlearn/course-library/pkg/response"
)

// CookieName is the session credential cookie.
const CookieName = "token"

type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// resolve extracts the session credential from the request. The cookie is the
// primary transport; an Authorization bearer header works as a fallback for
// non-browser clients.
func (m *AuthMiddleware) resolve(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return ""
}

// RequireAuth rejects requests without a valid session credential.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.resolve(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			c.Abort()
			return
		}

		claim, err := m.tokens.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(response.ClaimKey, claim)
		c.Next()
	}
}

// OptionalAuth resolves an identity claim when a valid credential is present
// but never rejects the request. Read-only catalog endpoints use this.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := m.resolve(c); tokenString != "" {
			if claim, err := m.tokens.Parse(tokenString); err == nil {
				c.Set(response.ClaimKey, claim)
			}
		}
		c.Next()
	}
}
