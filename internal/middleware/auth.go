package middleware

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/auth"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	PrincipalKey = "principal"
	UserIDKey    = "user_id"
)

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message, "code": code})
}

// AuthMiddleware accepts a bearer token from the Authorization header or the
// token query parameter.
func AuthMiddleware(authenticator auth.Authenticator, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if header := c.GetHeader("Authorization"); header != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debug("Token rejected", "path", c.Request.URL.Path, "error", err)
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, principal.ID)
		c.Next()
	}
}

// RoleMiddleware admits the listed roles. Admins pass every role check.
func RoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		if principal.IsAdmin() {
			c.Next()
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	}
}

func GetPrincipal(c *gin.Context) *models.Principal {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}
