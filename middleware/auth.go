package middleware

import (
	"errors"
	"strings"

	"tonotes/model"
	"tonotes/services"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores user_id and role
// in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			utils.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		if services.IsTokenBlacklisted(token) {
			utils.Unauthorized(c, "token has been invalidated")
			c.Abort()
			return
		}

		userID, role, err := services.ParseAccessToken(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				utils.Unauthorized(c, "token has expired")
			case errors.Is(err, services.ErrWrongTokenType):
				utils.Unauthorized(c, "invalid token type")
			default:
				utils.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("access_token", token)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != model.RoleAdmin {
			utils.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
