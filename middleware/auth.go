package middleware

import (
	"net/http"
	"strings"

	"tidybook/utils"

	"github.com/gin-gonic/gin"
)

const (
	RoleHousekeeper = "housekeeper"
	RoleHomeowner   = "homeowner"
)

// AuthMiddleware verifies the bearer token issued by the auth collaborator
// and stores the caller's identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("subjectID", claims.Subject)
		c.Set("subjectRole", claims.Role)
		c.Set("subjectName", claims.Name)
		c.Next()
	}
}

// RequireRole rejects callers whose verified role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("subjectRole") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this operation"})
			return
		}
		c.Next()
	}
}

// SubjectID returns the verified caller identity set by AuthMiddleware.
func SubjectID(c *gin.Context) string {
	return c.GetString("subjectID")
}

// SubjectName returns the verified caller display name set by AuthMiddleware.
func SubjectName(c *gin.Context) string {
	return c.GetString("subjectName")
}
