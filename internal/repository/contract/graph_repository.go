package contract

import (
	"context"

	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"

	"github.com/google/uuid"
)

type GraphNodeRepository interface {
	CreateMany(ctx context.Context, nodes []*entity.GraphNode) error
	DeleteAllByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphNode, error)
}

type GraphEdgeRepository interface {
	CreateMany(ctx context.Context, edges []*entity.GraphEdge) error
	DeleteAllByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphEdge, error)
}
