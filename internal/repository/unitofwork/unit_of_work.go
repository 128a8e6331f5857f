package unitofwork

import (
	"context"

	"github.com/FishWY/lunwen-workspace/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	WorkspaceRepository() contract.WorkspaceRepository
	GraphNodeRepository() contract.GraphNodeRepository
	GraphEdgeRepository() contract.GraphEdgeRepository
}
