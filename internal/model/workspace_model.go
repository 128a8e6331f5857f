package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(255);not null"`
	PdfUrl     string    `gorm:"type:varchar(512)"`
	PdfContent string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Nodes []GraphNode `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
	Edges []GraphEdge `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
