package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahadathhs/blogman/internal/domain"
)

// RequireRole runs after Auth and rejects callers whose role claim is not in
// the allowed set.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := domain.Role(c.GetString("userRole"))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not allowed to perform this action",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}
