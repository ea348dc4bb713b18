package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/response"
)

// JWTAuth validates the bearer token and stores the salon identity on the
// request context for the admin handlers.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Bearer token required")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}
		if claims.SalonID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token carries no salon")
			c.Abort()
			return
		}

		c.Set("salon_id", claims.SalonID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
