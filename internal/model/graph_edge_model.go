package model

import (
	"time"

	"github.com/google/uuid"
)

type GraphEdge struct {
	Id          string    `gorm:"type:varchar(256);primaryKey"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Source      string    `gorm:"type:varchar(128);not null"`
	Target      string    `gorm:"type:varchar(128);not null"`
	Animated    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (GraphEdge) TableName() string {
	return "graph_edges"
}
