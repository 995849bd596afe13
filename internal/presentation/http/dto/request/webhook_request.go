package request

import "encoding/json"

// PlatformEventRequest is the push notification the platform delivers
// when server-side state the terminals cache may have changed.
type PlatformEventRequest struct {
	Topic    string          `json:"topic" validate:"required,oneof=sale-created inventory-updated"`
	TenantID string          `json:"tenant_id" validate:"required,uuid"`
	Payload  json.RawMessage `json:"payload"`
}
