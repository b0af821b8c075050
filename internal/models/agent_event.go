package models

import "time"

// Agent event types.
const (
	EventUploadSucceeded = "UPLOAD_SUCCEEDED"
	EventUploadFailed    = "UPLOAD_FAILED"
	EventDeviceNotFound  = "DEVICE_NOT_FOUND"
	EventDeviceAttached  = "DEVICE_ATTACHED"
	EventDeviceDetached  = "DEVICE_DETACHED"
)

// EventTypes lists every type the agent records.
var EventTypes = []string{
	EventUploadSucceeded,
	EventUploadFailed,
	EventDeviceNotFound,
	EventDeviceAttached,
	EventDeviceDetached,
}

// IsEventType reports whether t is one of EventTypes.
func IsEventType(t string) bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AgentEvent is a single history entry.
type AgentEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // UPLOAD_SUCCEEDED | UPLOAD_FAILED | DEVICE_NOT_FOUND | DEVICE_ATTACHED | DEVICE_DETACHED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
