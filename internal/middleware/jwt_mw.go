package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"phonebook/internal/model"
	"phonebook/internal/utils"
)

// AuthLoginKey is the gin context key holding the verified token login
const AuthLoginKey = "authLogin"

// JWTAuthMiddleware guards the contact endpoints. A missing or non-bearer
// Authorization header is an anonymous request (401); a present but invalid
// or expired token is rejected separately (400). On success the verified
// login is stored in the context for the handlers to resolve.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized request (use JWT-token)")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized request (use JWT-token)")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid JWT-token")
			return
		}

		c.Set(AuthLoginKey, claims.Login)
		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}
