package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GraphNode ids are minted by the canvas layer (e.g. "topic-<uuid>",
// "note-<timestamp>") so the primary key is a plain string, not a uuid.
type GraphNode struct {
	Id          string         `gorm:"type:varchar(128);primaryKey"`
	WorkspaceId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type        string         `gorm:"type:varchar(32);not null"`
	Position    datatypes.JSON `gorm:"type:jsonb;not null"`
	Data        datatypes.JSON `gorm:"type:jsonb;not null"`
	ParentId    *string        `gorm:"type:varchar(128)"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (GraphNode) TableName() string {
	return "graph_nodes"
}
