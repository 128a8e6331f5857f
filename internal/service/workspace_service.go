package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"
	"github.com/FishWY/lunwen-workspace/internal/repository/unitofwork"
	"github.com/FishWY/lunwen-workspace/pkg/canvas"
	"github.com/FishWY/lunwen-workspace/pkg/pdf"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AnonymousEmail is the shared account that owns userless uploads.
const AnonymousEmail = "anonymous@example.com"

type IWorkspaceService interface {
	Upload(ctx context.Context, userId *uuid.UUID, title, filePath, pdfUrl string) (*dto.UploadWorkspaceResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowWorkspaceResponse, error)
	List(ctx context.Context, userId *uuid.UUID) ([]*dto.ListWorkspaceItem, error)
	SaveCanvas(ctx context.Context, req *dto.SaveCanvasRequest) (*dto.SaveCanvasResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportMarkdown(ctx context.Context, id uuid.UUID) (string, error)
}

type workspaceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	uploadDir        string
}

func NewWorkspaceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	uploadDir string,
) IWorkspaceService {
	return &workspaceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		uploadDir:        uploadDir,
	}
}

// Upload extracts the PDF's text and creates the workspace with its initial
// file node. The saved file is removed again when any step after it fails, so
// a failed upload leaves nothing on disk.
func (c *workspaceService) Upload(ctx context.Context, userId *uuid.UUID, title, filePath, pdfUrl string) (*dto.UploadWorkspaceResponse, error) {
	extracted, err := pdf.Extract(filePath)
	if err != nil {
		os.Remove(filePath)
		return nil, fiber.NewError(fiber.StatusBadRequest, "could not read PDF: "+err.Error())
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		os.Remove(filePath)
		return nil, err
	}
	defer uow.Rollback()

	ownerId, err := c.resolveOwner(ctx, uow, userId)
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	workspace := entity.Workspace{
		Id:         uuid.New(),
		UserId:     ownerId,
		Title:      title,
		PdfUrl:     pdfUrl,
		PdfContent: extracted.Text,
		CreatedAt:  time.Now(),
	}
	if err := uow.WorkspaceRepository().Create(ctx, &workspace); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	fileNode := entity.GraphNode{
		Id:          "file-" + uuid.NewString(),
		WorkspaceId: workspace.Id,
		Type:        canvas.NodeTypeFile,
		Position:    entity.Position{X: 0, Y: 0},
		Data:        entity.NodeData{Label: title, Page: 1},
	}
	if err := uow.GraphNodeRepository().CreateMany(ctx, []*entity.GraphNode{&fileNode}); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	c.publisherService.PublishTextRefreshed(ctx, workspace.Id, dto.TextStatusFresh, len(extracted.Text))

	return &dto.UploadWorkspaceResponse{
		WorkspaceId: workspace.Id,
		Title:       workspace.Title,
		PdfUrl:      workspace.PdfUrl,
		Text:        extracted.Text,
	}, nil
}

func (c *workspaceService) resolveOwner(ctx context.Context, uow unitofwork.UnitOfWork, userId *uuid.UUID) (uuid.UUID, error) {
	if userId != nil {
		return *userId, nil
	}

	// The hash is a throwaway; nobody ever logs in as the anonymous user.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}
	anon := entity.User{
		Id:           uuid.New(),
		Email:        AnonymousEmail,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uow.UserRepository().UpsertByEmail(ctx, &anon); err != nil {
		return uuid.Nil, err
	}
	return anon.Id, nil
}

func (c *workspaceService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowWorkspaceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}

	nodes, err := uow.GraphNodeRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: id})
	if err != nil {
		return nil, err
	}
	edges, err := uow.GraphEdgeRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: id})
	if err != nil {
		return nil, err
	}

	res := &dto.ShowWorkspaceResponse{
		Id:        workspace.Id,
		Title:     workspace.Title,
		PdfUrl:    workspace.PdfUrl,
		Nodes:     make([]dto.GraphNodeDto, 0, len(nodes)),
		Edges:     make([]dto.GraphEdgeDto, 0, len(edges)),
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}
	for _, n := range nodes {
		res.Nodes = append(res.Nodes, nodeToDto(n))
	}
	for _, e := range edges {
		res.Edges = append(res.Edges, edgeToDto(e))
	}
	return res, nil
}

func (c *workspaceService) List(ctx context.Context, userId *uuid.UUID) ([]*dto.ListWorkspaceItem, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if userId != nil {
		specs = append(specs, specification.UserOwnedBy{UserID: *userId})
	}

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ListWorkspaceItem, 0, len(workspaces))
	for _, w := range workspaces {
		items = append(items, &dto.ListWorkspaceItem{
			Id:        w.Id,
			Title:     w.Title,
			PdfUrl:    w.PdfUrl,
			CreatedAt: w.CreatedAt,
			UpdatedAt: w.UpdatedAt,
		})
	}
	return items, nil
}

// SaveCanvas replaces the stored graph wholesale inside one transaction. The
// client always sends the full working copy, so merging is never needed.
func (c *workspaceService) SaveCanvas(ctx context.Context, req *dto.SaveCanvasRequest) (*dto.SaveCanvasResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.GraphNodeRepository().DeleteAllByWorkspaceId(ctx, req.Id); err != nil {
		return nil, err
	}
	if err := uow.GraphEdgeRepository().DeleteAllByWorkspaceId(ctx, req.Id); err != nil {
		return nil, err
	}

	nodes := make([]*entity.GraphNode, 0, len(req.Nodes))
	for _, n := range req.Nodes {
		nodes = append(nodes, nodeFromDto(req.Id, n))
	}
	edges := make([]*entity.GraphEdge, 0, len(req.Edges))
	for _, e := range req.Edges {
		edges = append(edges, edgeFromDto(req.Id, e))
	}

	if len(nodes) > 0 {
		if err := uow.GraphNodeRepository().CreateMany(ctx, nodes); err != nil {
			return nil, err
		}
	}
	if len(edges) > 0 {
		if err := uow.GraphEdgeRepository().CreateMany(ctx, edges); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	workspace.UpdatedAt = &now
	if err := uow.WorkspaceRepository().Update(ctx, workspace); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SaveCanvasResponse{
		Id:        req.Id,
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}, nil
}

func (c *workspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if workspace == nil {
		return fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}

	// Nodes and edges go with the workspace via FK cascade.
	if err := uow.WorkspaceRepository().Delete(ctx, id); err != nil {
		return err
	}

	if workspace.PdfUrl != "" {
		path := filepath.Join(c.uploadDir, filepath.Base(workspace.PdfUrl))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to remove PDF for workspace %s: %v", id, err)
		}
	}
	return nil
}

func (c *workspaceService) ExportMarkdown(ctx context.Context, id uuid.UUID) (string, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return "", err
	}
	if workspace == nil {
		return "", fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}

	nodes, err := uow.GraphNodeRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: id})
	if err != nil {
		return "", err
	}
	edges, err := uow.GraphEdgeRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: id})
	if err != nil {
		return "", err
	}

	canvasNodes := make([]canvas.Node, 0, len(nodes))
	for _, n := range nodes {
		canvasNodes = append(canvasNodes, canvas.Node{
			ID:       n.Id,
			Type:     n.Type,
			Position: canvas.Position{X: n.Position.X, Y: n.Position.Y},
			Data: canvas.NodeData{
				Label:   n.Data.Label,
				Content: n.Data.Content,
				Quote:   n.Data.Quote,
				Page:    n.Data.Page,
			},
		})
	}
	canvasEdges := make([]canvas.Edge, 0, len(edges))
	for _, e := range edges {
		canvasEdges = append(canvasEdges, canvas.Edge{
			ID:       e.Id,
			Source:   e.Source,
			Target:   e.Target,
			Animated: e.Animated,
		})
	}

	return canvas.ExportMarkdown(canvasNodes, canvasEdges), nil
}

func nodeToDto(n *entity.GraphNode) dto.GraphNodeDto {
	return dto.GraphNodeDto{
		Id:       n.Id,
		Type:     n.Type,
		Position: dto.PositionDto{X: n.Position.X, Y: n.Position.Y},
		Data: dto.NodeDataDto{
			Label:   n.Data.Label,
			Content: n.Data.Content,
			Quote:   n.Data.Quote,
			Page:    n.Data.Page,
		},
		ParentId: n.ParentId,
	}
}

func nodeFromDto(workspaceId uuid.UUID, n dto.GraphNodeDto) *entity.GraphNode {
	return &entity.GraphNode{
		Id:          n.Id,
		WorkspaceId: workspaceId,
		Type:        n.Type,
		Position:    entity.Position{X: n.Position.X, Y: n.Position.Y},
		Data: entity.NodeData{
			Label:   n.Data.Label,
			Content: n.Data.Content,
			Quote:   n.Data.Quote,
			Page:    n.Data.Page,
		},
		ParentId: n.ParentId,
	}
}

func edgeToDto(e *entity.GraphEdge) dto.GraphEdgeDto {
	return dto.GraphEdgeDto{
		Id:       e.Id,
		Source:   e.Source,
		Target:   e.Target,
		Animated: e.Animated,
	}
}

func edgeFromDto(workspaceId uuid.UUID, e dto.GraphEdgeDto) *entity.GraphEdge {
	return &entity.GraphEdge{
		Id:          e.Id,
		WorkspaceId: workspaceId,
		Source:      e.Source,
		Target:      e.Target,
		Animated:    e.Animated,
	}
}
