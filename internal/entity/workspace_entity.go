package entity

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	PdfUrl     string
	PdfContent string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Position is a canvas coordinate, persisted as JSON on graph nodes.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the type-specific payload of a graph node. All fields are
// optional; which ones are set depends on the node type.
type NodeData struct {
	Label   string `json:"label,omitempty"`
	Content string `json:"content,omitempty"`
	Quote   string `json:"quote,omitempty"`
	Page    int    `json:"page,omitempty"`
}

type GraphNode struct {
	Id          string
	WorkspaceId uuid.UUID
	Type        string
	Position    Position
	Data        NodeData
	ParentId    *string
}

type GraphEdge struct {
	Id          string
	WorkspaceId uuid.UUID
	Source      string
	Target      string
	Animated    bool
}
