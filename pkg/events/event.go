package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MINDMAP_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes used by the workspace pipeline.
const (
	TypeTextRefreshed    = "TEXT_REFRESHED"
	TypeMindmapGenerated = "MINDMAP_GENERATED"
)

// NewTextRefreshed records a (re-)extraction of a workspace's PDF text.
// Status is "fresh" or "stale".
func NewTextRefreshed(workspaceID, status string, chars int) Event {
	return BaseEvent{
		Type: TypeTextRefreshed,
		Data: map[string]interface{}{
			"workspace_id": workspaceID,
			"status":       status,
			"chars":        chars,
		},
		OccurredAt: time.Now(),
	}
}

// NewMindmapGenerated records a completed outline generation.
func NewMindmapGenerated(workspaceID string, nodeCount int, fallback bool) Event {
	return BaseEvent{
		Type: TypeMindmapGenerated,
		Data: map[string]interface{}{
			"workspace_id": workspaceID,
			"node_count":   nodeCount,
			"fallback":     fallback,
		},
		OccurredAt: time.Now(),
	}
}
