package dto

import "github.com/google/uuid"

// WorkspaceEventMessage is the watermill payload for workspace pipeline
// events. Type mirrors pkg/events type codes.
type WorkspaceEventMessage struct {
	Type        string    `json:"type"`
	WorkspaceId uuid.UUID `json:"workspace_id"`
	TextStatus  string    `json:"text_status,omitempty"`
	Chars       int       `json:"chars,omitempty"`
	NodeCount   int       `json:"node_count,omitempty"`
	Fallback    bool      `json:"fallback,omitempty"`
}
