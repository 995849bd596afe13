package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/enum"
)

// Counter is a point-of-sale register/till. Counters are administered
// elsewhere; the gateway only lists and selects them. Multiple
// terminals may bind the same counter concurrently; the platform owns
// any resulting conflict.
type Counter struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Status        enum.CounterStatus `json:"status"`
	IsDefault     bool               `json:"is_default"`
	LastSessionAt *time.Time         `json:"last_session_at,omitempty"`
}

// Active reports whether the counter can be bound to a session.
func (c Counter) Active() bool {
	return c.Status == enum.CounterActive
}
