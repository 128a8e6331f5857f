package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/pkg/logger"
	"github.com/FishWY/lunwen-workspace/internal/repository/memory"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"
	"github.com/FishWY/lunwen-workspace/internal/repository/unitofwork"
	"github.com/FishWY/lunwen-workspace/pkg/llm"
	"github.com/FishWY/lunwen-workspace/pkg/mindmap"
	"github.com/FishWY/lunwen-workspace/pkg/pdf"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const deepDivePrompt = `You are an expert tutor. Explain the following concept in depth, grounded in the provided document excerpt. Answer in the same language the question is asked in.

Concept: %s

Document excerpt:
%s`

const chatSystemPrompt = `You are a reading assistant for the following document. Answer questions about it concisely and accurately. When the document does not contain the answer, say so.

Document excerpt:
%s

Conversation so far:
%s
Assistant:`

// AICaps bundles the per-feature text size limits.
type AICaps struct {
	Mindmap  int
	DeepDive int
	Chat     int
}

type IAiService interface {
	GenerateMindmap(ctx context.Context, workspaceId uuid.UUID) (*dto.GenerateMindmapResponse, error)
	DeepDive(ctx context.Context, req *dto.DeepDiveRequest) (*dto.DeepDiveResponse, error)
	ChatStream(ctx context.Context, req *dto.ChatRequest, fn llm.StreamFunc) error
}

type aiService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        *mindmap.Generator
	llmProvider      llm.LLMProvider
	textCache        *memory.TextCacheRepository
	publisherService IPublisherService
	logger           logger.ILogger
	uploadDir        string
	caps             AICaps
}

func NewAiService(
	uowFactory unitofwork.RepositoryFactory,
	generator *mindmap.Generator,
	llmProvider llm.LLMProvider,
	textCache *memory.TextCacheRepository,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
	uploadDir string,
	caps AICaps,
) IAiService {
	return &aiService{
		uowFactory:       uowFactory,
		generator:        generator,
		llmProvider:      llmProvider,
		textCache:        textCache,
		publisherService: publisherService,
		logger:           sysLogger,
		uploadDir:        uploadDir,
		caps:             caps,
	}
}

// GenerateMindmap re-extracts the workspace PDF, asks the model for an
// outline and falls back to a page skeleton when the model path fails. The
// response always carries a tree when the workspace has any text at all.
func (s *aiService) GenerateMindmap(ctx context.Context, workspaceId uuid.UUID) (*dto.GenerateMindmapResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}

	text, textStatus := s.refreshText(ctx, uow, workspace)
	if strings.TrimSpace(text) == "" {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "workspace has no extractable text")
	}

	s.publisherService.PublishTextRefreshed(ctx, workspaceId, textStatus, len(text))

	capped := pdf.LimitTextSize(text, s.caps.Mindmap)

	usedFallback := false
	tree, err := s.generator.Generate(ctx, capped)
	if err != nil {
		s.logger.Warn("AiService", "mind map generation failed, using fallback", map[string]interface{}{
			"workspace_id": workspaceId,
			"error":        err.Error(),
		})
		tree = mindmap.Fallback(text)
		usedFallback = true
	}

	nodeCount := countNodes(tree.Children)
	s.publisherService.PublishMindmapGenerated(ctx, workspaceId, nodeCount, usedFallback)

	return &dto.GenerateMindmapResponse{
		Root:       tree.Root,
		Children:   treeToDto(tree.Children),
		Fallback:   usedFallback,
		TextStatus: textStatus,
	}, nil
}

// refreshText re-extracts from the PDF on disk so the outline reflects the
// current file. When extraction fails the stored text is used instead and the
// caller gets told it is stale; silently serving old text would make
// highlight mismatches impossible to diagnose.
func (s *aiService) refreshText(ctx context.Context, uow unitofwork.UnitOfWork, workspace *entity.Workspace) (string, string) {
	path := filepath.Join(s.uploadDir, filepath.Base(workspace.PdfUrl))
	extracted, err := pdf.Extract(path)
	if err != nil || strings.TrimSpace(extracted.Text) == "" {
		detail := "empty extraction"
		if err != nil {
			detail = err.Error()
		}
		s.logger.Warn("AiService", "re-extraction failed, keeping stored text", map[string]interface{}{
			"workspace_id": workspace.Id,
			"error":        detail,
		})
		return workspace.PdfContent, dto.TextStatusStale
	}

	if err := uow.WorkspaceRepository().UpdatePdfContent(ctx, workspace.Id, extracted.Text); err != nil {
		s.logger.Error("AiService", "failed to persist re-extracted text", map[string]interface{}{
			"workspace_id": workspace.Id,
			"error":        err.Error(),
		})
		// The fresh text is still the right input even if the write failed.
	}
	s.textCache.Save(workspace.Id.String(), extracted.Text)
	return extracted.Text, dto.TextStatusFresh
}

// DeepDive explains one concept against the document. Unlike the mind map
// there is no fallback; a model failure surfaces to the caller.
func (s *aiService) DeepDive(ctx context.Context, req *dto.DeepDiveRequest) (*dto.DeepDiveResponse, error) {
	text, err := s.loadText(ctx, req.WorkspaceId)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(deepDivePrompt, req.Concept, pdf.LimitTextSize(text, s.caps.DeepDive))
	explanation, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("deep dive generation: %w", err)
	}
	return &dto.DeepDiveResponse{Explanation: strings.TrimSpace(explanation)}, nil
}

// ChatStream streams an answer grounded in the document. fn receives raw
// text fragments; framing is the controller's job.
func (s *aiService) ChatStream(ctx context.Context, req *dto.ChatRequest, fn llm.StreamFunc) error {
	text, err := s.loadText(ctx, req.WorkspaceId)
	if err != nil {
		return err
	}

	var transcript strings.Builder
	for _, m := range req.Messages {
		role := "User"
		if m.Role == "assistant" {
			role = "Assistant"
		}
		transcript.WriteString(role)
		transcript.WriteString(": ")
		transcript.WriteString(m.Content)
		transcript.WriteString("\n")
	}

	prompt := fmt.Sprintf(chatSystemPrompt, pdf.LimitTextSize(text, s.caps.Chat), transcript.String())
	return s.llmProvider.Stream(ctx, prompt, fn)
}

// loadText serves document text cache-first, then from the stored column.
func (s *aiService) loadText(ctx context.Context, workspaceId uuid.UUID) (string, error) {
	if cached, found := s.textCache.Get(workspaceId.String()); found {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return "", err
	}
	if workspace == nil {
		return "", fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}
	if strings.TrimSpace(workspace.PdfContent) == "" {
		return "", fiber.NewError(fiber.StatusUnprocessableEntity, "workspace has no extractable text")
	}

	s.textCache.Save(workspaceId.String(), workspace.PdfContent)
	return workspace.PdfContent, nil
}

func countNodes(nodes []*mindmap.Node) int {
	count := 0
	for _, n := range nodes {
		count += 1 + countNodes(n.Children)
	}
	return count
}

func treeToDto(nodes []*mindmap.Node) []dto.MindmapNodeDto {
	out := make([]dto.MindmapNodeDto, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.MindmapNodeDto{
			Label:    n.Label,
			Quote:    n.Quote,
			Page:     n.Page,
			Children: treeToDto(n.Children),
		})
	}
	return out
}
