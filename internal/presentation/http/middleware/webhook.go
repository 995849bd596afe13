package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
)

// WebhookAuth gates the platform push endpoint on a shared secret.
// Operator tokens never reach this route; the platform authenticates
// itself with the X-Webhook-Secret header.
func WebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Webhook-Secret")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			response.Unauthorized(c, "Invalid webhook secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
