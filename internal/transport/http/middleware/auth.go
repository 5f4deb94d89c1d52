package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/auth"
)

const errUnauthorized = "Unauthorized"

// Auth validates a Bearer session JWT and sets "userID", "userEmail" and
// "userRole" in the gin context. Tokens minted for any other purpose
// (verification, reset) are rejected.
func Auth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Verify(raw, auth.PurposeSession)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if claims.Subject == "" {
			abortUnauthorized(c)
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": errUnauthorized,
		"data":    nil,
	})
}
