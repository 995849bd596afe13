package handler

import (
	"context"
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmatill/terminal-api/internal/application/service"
	"github.com/pharmatill/terminal-api/internal/checkout"
	"github.com/pharmatill/terminal-api/internal/presentation/http/dto/response"
	"github.com/pharmatill/terminal-api/internal/upstream"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get("operator_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetTenantID extracts the tenant ID from the Gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get("tenant_id"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// upstreamContext carries the operator's bearer token into the request
// context so every platform call is made on the operator's behalf.
func upstreamContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if token, exists := c.Get("bearer_token"); exists {
		if t, ok := token.(string); ok && t != "" {
			ctx = upstream.WithToken(ctx, t)
		}
	}
	return ctx
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// resolveSession fetches the operator's session named in the :id path
// parameter, writing the error response on failure.
func resolveSession(c *gin.Context, svc *service.CheckoutService) (*checkout.Session, bool) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return nil, false
	}
	sess, err := svc.Get(id, GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return sess, true
}

// toCents converts a decimal major-unit amount to cents.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
