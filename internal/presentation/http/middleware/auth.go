package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
	"github.com/pharmatill/terminal-api/pkg/utils"
)

// AuthMiddleware validates the platform-issued operator token and
// stashes the operator identity plus the raw token, which the gateway
// forwards on every upstream call.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := jwtManager.Validate(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("operator_email", claims.Email)
		c.Set("operator_roles", claims.Roles)
		c.Set("pharmacy_name", claims.PharmacyName)
		c.Set("bearer_token", tokenString)

		c.Next()
	}
}

// GetOperatorID extracts the operator ID set by AuthMiddleware.
func GetOperatorID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get("operator_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetTenantID extracts the tenant ID set by AuthMiddleware.
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get("tenant_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
