package implementation

import (
	"context"

	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/mapper"
	"github.com/FishWY/lunwen-workspace/internal/model"
	"github.com/FishWY/lunwen-workspace/internal/repository/contract"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GraphNodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GraphMapper
}

func NewGraphNodeRepository(db *gorm.DB) contract.GraphNodeRepository {
	return &GraphNodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewGraphMapper(),
	}
}

func (r *GraphNodeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GraphNodeRepositoryImpl) CreateMany(ctx context.Context, nodes []*entity.GraphNode) error {
	if len(nodes) == 0 {
		return nil
	}
	models := r.mapper.NodesToModels(nodes)
	return r.db.WithContext(ctx).CreateInBatches(models, 200).Error
}

func (r *GraphNodeRepositoryImpl) DeleteAllByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceId).
		Delete(&model.GraphNode{}).Error
}

func (r *GraphNodeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphNode, error) {
	var models []*model.GraphNode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}

type GraphEdgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GraphMapper
}

func NewGraphEdgeRepository(db *gorm.DB) contract.GraphEdgeRepository {
	return &GraphEdgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewGraphMapper(),
	}
}

func (r *GraphEdgeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GraphEdgeRepositoryImpl) CreateMany(ctx context.Context, edges []*entity.GraphEdge) error {
	if len(edges) == 0 {
		return nil
	}
	models := r.mapper.EdgesToModels(edges)
	return r.db.WithContext(ctx).CreateInBatches(models, 200).Error
}

func (r *GraphEdgeRepositoryImpl) DeleteAllByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceId).
		Delete(&model.GraphEdge{}).Error
}

func (r *GraphEdgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphEdge, error) {
	var models []*model.GraphEdge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.EdgesToEntities(models), nil
}
