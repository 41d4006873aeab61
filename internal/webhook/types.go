// Package webhook notifies the external traffic-control engine when the
// strategy collection changes, so it can re-pull the canonical policy
// export.
package webhook

import (
	"time"
)

// Event types that trigger an engine notification
const (
	EventStrategySaved      = "strategy.saved"
	EventStrategyDeleted    = "strategy.deleted"
	EventStrategiesReplaced = "strategies.replaced"
)

// Event is the notification payload sent to the configured endpoint.
type Event struct {
	Type       string    `json:"event"`
	Timestamp  time.Time `json:"timestamp"`
	StrategyID string    `json:"strategy_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}
