package dto

import "github.com/google/uuid"

type GenerateMindmapRequest struct {
	WorkspaceId uuid.UUID `json:"workspace_id" validate:"required"`
}

type MindmapNodeDto struct {
	Label    string           `json:"label"`
	Quote    string           `json:"quote,omitempty"`
	Page     int              `json:"page,omitempty"`
	Children []MindmapNodeDto `json:"children,omitempty"`
}

// TextStatus values for GenerateMindmapResponse. "stale" means re-extraction
// failed and the outline was built from the last stored text.
const (
	TextStatusFresh = "fresh"
	TextStatusStale = "stale"
)

type GenerateMindmapResponse struct {
	Root       string           `json:"root"`
	Children   []MindmapNodeDto `json:"children"`
	Fallback   bool             `json:"fallback"`
	TextStatus string           `json:"text_status"`
}

type DeepDiveRequest struct {
	WorkspaceId uuid.UUID `json:"workspace_id" validate:"required"`
	Concept     string    `json:"concept" validate:"required"`
}

type DeepDiveResponse struct {
	Explanation string `json:"explanation"`
}

type ChatMessageDto struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	WorkspaceId uuid.UUID        `json:"workspace_id" validate:"required"`
	Messages    []ChatMessageDto `json:"messages" validate:"required,min=1,dive"`
}

// ChatChunk is one SSE frame body: data: {"text": "..."}
type ChatChunk struct {
	Text string `json:"text"`
}
