package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/utils/token"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
	NameKey   = "name"
	ClaimsKey = "claims"
)

func AuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			msg := "Authorization header is required"
			if errors.Is(err, token.ErrInvalidAuthFormat) {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store user info in the context for later use
		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(NameKey, claims.Name)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}
