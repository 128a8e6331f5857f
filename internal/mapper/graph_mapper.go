package mapper

import (
	"encoding/json"

	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/model"

	"gorm.io/datatypes"
)

type GraphMapper struct{}

func NewGraphMapper() *GraphMapper {
	return &GraphMapper{}
}

func (m *GraphMapper) NodeToEntity(n *model.GraphNode) *entity.GraphNode {
	if n == nil {
		return nil
	}

	var position entity.Position
	// Corrupt JSON leaves the zero position rather than failing a whole load.
	_ = json.Unmarshal(n.Position, &position)

	var data entity.NodeData
	_ = json.Unmarshal(n.Data, &data)

	return &entity.GraphNode{
		Id:          n.Id,
		WorkspaceId: n.WorkspaceId,
		Type:        n.Type,
		Position:    position,
		Data:        data,
		ParentId:    n.ParentId,
	}
}

func (m *GraphMapper) NodeToModel(n *entity.GraphNode) *model.GraphNode {
	if n == nil {
		return nil
	}

	position, _ := json.Marshal(n.Position)
	data, _ := json.Marshal(n.Data)

	return &model.GraphNode{
		Id:          n.Id,
		WorkspaceId: n.WorkspaceId,
		Type:        n.Type,
		Position:    datatypes.JSON(position),
		Data:        datatypes.JSON(data),
		ParentId:    n.ParentId,
	}
}

func (m *GraphMapper) EdgeToEntity(e *model.GraphEdge) *entity.GraphEdge {
	if e == nil {
		return nil
	}
	return &entity.GraphEdge{
		Id:          e.Id,
		WorkspaceId: e.WorkspaceId,
		Source:      e.Source,
		Target:      e.Target,
		Animated:    e.Animated,
	}
}

func (m *GraphMapper) EdgeToModel(e *entity.GraphEdge) *model.GraphEdge {
	if e == nil {
		return nil
	}
	return &model.GraphEdge{
		Id:          e.Id,
		WorkspaceId: e.WorkspaceId,
		Source:      e.Source,
		Target:      e.Target,
		Animated:    e.Animated,
	}
}

func (m *GraphMapper) NodesToEntities(nodes []*model.GraphNode) []*entity.GraphNode {
	entities := make([]*entity.GraphNode, len(nodes))
	for i, n := range nodes {
		entities[i] = m.NodeToEntity(n)
	}
	return entities
}

func (m *GraphMapper) NodesToModels(nodes []*entity.GraphNode) []*model.GraphNode {
	models := make([]*model.GraphNode, len(nodes))
	for i, n := range nodes {
		models[i] = m.NodeToModel(n)
	}
	return models
}

func (m *GraphMapper) EdgesToEntities(edges []*model.GraphEdge) []*entity.GraphEdge {
	entities := make([]*entity.GraphEdge, len(edges))
	for i, e := range edges {
		entities[i] = m.EdgeToEntity(e)
	}
	return entities
}

func (m *GraphMapper) EdgesToModels(edges []*entity.GraphEdge) []*model.GraphEdge {
	models := make([]*model.GraphEdge, len(edges))
	for i, e := range edges {
		models[i] = m.EdgeToModel(e)
	}
	return models
}
