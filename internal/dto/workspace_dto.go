package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadWorkspaceResponse struct {
	WorkspaceId uuid.UUID `json:"workspace_id"`
	Title       string    `json:"title"`
	PdfUrl      string    `json:"pdf_url"`
	Text        string    `json:"text"`
}

type PositionDto struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeDataDto struct {
	Label   string `json:"label,omitempty"`
	Content string `json:"content,omitempty"`
	Quote   string `json:"quote,omitempty"`
	Page    int    `json:"page,omitempty"`
}

type GraphNodeDto struct {
	Id       string      `json:"id" validate:"required"`
	Type     string      `json:"type" validate:"required"`
	Position PositionDto `json:"position"`
	Data     NodeDataDto `json:"data"`
	ParentId *string     `json:"parent_id,omitempty"`
}

type GraphEdgeDto struct {
	Id       string `json:"id" validate:"required"`
	Source   string `json:"source" validate:"required"`
	Target   string `json:"target" validate:"required"`
	Animated bool   `json:"animated,omitempty"`
}

type ShowWorkspaceResponse struct {
	Id        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	PdfUrl    string         `json:"pdf_url"`
	Nodes     []GraphNodeDto `json:"nodes"`
	Edges     []GraphEdgeDto `json:"edges"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at"`
}

type ListWorkspaceItem struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	PdfUrl    string     `json:"pdf_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type SaveCanvasRequest struct {
	Id    uuid.UUID
	Nodes []GraphNodeDto `json:"nodes" validate:"required"`
	Edges []GraphEdgeDto `json:"edges"`
}

type SaveCanvasResponse struct {
	Id        uuid.UUID `json:"id"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
}
