package mapper

import (
	"time"

	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/model"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Workspace{
		Id:         w.Id,
		UserId:     w.UserId,
		Title:      w.Title,
		PdfUrl:     w.PdfUrl,
		PdfContent: w.PdfContent,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Workspace{
		Id:         w.Id,
		UserId:     w.UserId,
		Title:      w.Title,
		PdfUrl:     w.PdfUrl,
		PdfContent: w.PdfContent,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}
