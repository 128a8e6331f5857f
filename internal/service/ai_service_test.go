package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/internal/entity"
	"github.com/FishWY/lunwen-workspace/internal/repository/contract"
	"github.com/FishWY/lunwen-workspace/internal/repository/memory"
	"github.com/FishWY/lunwen-workspace/internal/repository/specification"
	"github.com/FishWY/lunwen-workspace/internal/repository/unitofwork"
	"github.com/FishWY/lunwen-workspace/pkg/llm"
	"github.com/FishWY/lunwen-workspace/pkg/mindmap"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// --- Fakes ---

type fakeProvider struct {
	generateResponse string
	generateErr      error
	streamChunks     []string
	streamErr        error
	lastPrompt       string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.generateResponse, f.generateErr
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.lastPrompt = prompt
	return f.generateResponse, f.generateErr
}

func (f *fakeProvider) Stream(ctx context.Context, prompt string, fn llm.StreamFunc, opts ...llm.Option) error {
	f.lastPrompt = prompt
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, chunk := range f.streamChunks {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

type fakeWorkspaceRepo struct {
	workspaces map[uuid.UUID]*entity.Workspace
}

func (r *fakeWorkspaceRepo) Create(ctx context.Context, w *entity.Workspace) error {
	r.workspaces[w.Id] = w
	return nil
}

func (r *fakeWorkspaceRepo) Update(ctx context.Context, w *entity.Workspace) error {
	r.workspaces[w.Id] = w
	return nil
}

func (r *fakeWorkspaceRepo) UpdatePdfContent(ctx context.Context, id uuid.UUID, content string) error {
	if w, ok := r.workspaces[id]; ok {
		w.PdfContent = content
	}
	return nil
}

func (r *fakeWorkspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.workspaces, id)
	return nil
}

func (r *fakeWorkspaceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.workspaces[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workspace, error) {
	out := make([]*entity.Workspace, 0, len(r.workspaces))
	for _, w := range r.workspaces {
		out = append(out, w)
	}
	return out, nil
}

type fakeUow struct {
	workspaceRepo *fakeWorkspaceRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository           { return nil }
func (u *fakeUow) WorkspaceRepository() contract.WorkspaceRepository { return u.workspaceRepo }
func (u *fakeUow) GraphNodeRepository() contract.GraphNodeRepository { return nil }
func (u *fakeUow) GraphEdgeRepository() contract.GraphEdgeRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingPublisher struct {
	textEvents    []string
	mindmapCounts []int
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func (p *recordingPublisher) PublishTextRefreshed(ctx context.Context, workspaceId uuid.UUID, status string, chars int) {
	p.textEvents = append(p.textEvents, status)
}

func (p *recordingPublisher) PublishMindmapGenerated(ctx context.Context, workspaceId uuid.UUID, nodeCount int, fallback bool) {
	p.mindmapCounts = append(p.mindmapCounts, nodeCount)
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// --- Helpers ---

func newTestAiService(t *testing.T, provider llm.LLMProvider, workspaces ...*entity.Workspace) (IAiService, *recordingPublisher, *fakeWorkspaceRepo) {
	t.Helper()

	repo := &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]*entity.Workspace)}
	for _, w := range workspaces {
		repo.workspaces[w.Id] = w
	}
	pub := &recordingPublisher{}

	svc := NewAiService(
		&fakeUowFactory{uow: &fakeUow{workspaceRepo: repo}},
		mindmap.NewGenerator(provider, "Simplified Chinese (简体中文)"),
		provider,
		memory.NewTextCacheRepository(),
		pub,
		noopLogger{},
		t.TempDir(), // no PDF on disk, so re-extraction always degrades to stale
		AICaps{Mindmap: 300000, DeepDive: 8000, Chat: 5000},
	)
	return svc, pub, repo
}

func storedWorkspace() *entity.Workspace {
	return &entity.Workspace{
		Id:     uuid.New(),
		Title:  "attention.pdf",
		PdfUrl: "/uploads/attention.pdf",
		PdfContent: "[Page 1]\nAttention is all you need. We propose the Transformer.\n\n" +
			"[Page 2]\nThe encoder is composed of identical layers.\n\n",
	}
}

// --- Tests ---

func TestGenerateMindmap(t *testing.T) {
	t.Run("ModelResponseBecomesTree", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{
			generateResponse: `{"root":"Transformer","children":[
				{"label":"架构","quote":"We propose the Transformer.","page":1,
				 "children":[{"label":"编码器","quote":"The encoder is composed of identical layers.","page":2}]}
			]}`,
		}
		svc, pub, _ := newTestAiService(t, provider, ws)

		res, err := svc.GenerateMindmap(context.Background(), ws.Id)
		require.NoError(t, err)
		assert.Equal(t, "Transformer", res.Root)
		assert.False(t, res.Fallback)
		assert.Equal(t, dto.TextStatusStale, res.TextStatus, "no file on disk means stored text")
		require.Len(t, res.Children, 1)
		assert.Equal(t, "架构", res.Children[0].Label)

		assert.Equal(t, []string{dto.TextStatusStale}, pub.textEvents)
		assert.Equal(t, []int{2}, pub.mindmapCounts)
	})

	t.Run("ModelFailureFallsBackToPageSkeleton", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{generateErr: errors.New("model unavailable")}
		svc, _, _ := newTestAiService(t, provider, ws)

		res, err := svc.GenerateMindmap(context.Background(), ws.Id)
		require.NoError(t, err)
		assert.True(t, res.Fallback)
		assert.Equal(t, "Document Overview", res.Root)
		require.Len(t, res.Children, 2)
		assert.Equal(t, "Page 1", res.Children[0].Label)
		assert.Equal(t, "Attention is all you need.", res.Children[0].Quote)
	})

	t.Run("GarbageResponseFallsBack", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{generateResponse: "I cannot produce JSON today"}
		svc, _, _ := newTestAiService(t, provider, ws)

		res, err := svc.GenerateMindmap(context.Background(), ws.Id)
		require.NoError(t, err)
		assert.True(t, res.Fallback)
	})

	t.Run("UnknownWorkspaceIs404", func(t *testing.T) {
		svc, _, _ := newTestAiService(t, &fakeProvider{})

		_, err := svc.GenerateMindmap(context.Background(), uuid.New())
		require.Error(t, err)
		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
	})

	t.Run("EmptyTextIs422", func(t *testing.T) {
		ws := storedWorkspace()
		ws.PdfContent = "   "
		svc, _, _ := newTestAiService(t, &fakeProvider{}, ws)

		_, err := svc.GenerateMindmap(context.Background(), ws.Id)
		require.Error(t, err)
		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fiberErr.Code)
	})
}

func TestDeepDive(t *testing.T) {
	t.Run("PromptCarriesConceptAndText", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{generateResponse: "  An in-depth explanation.  "}
		svc, _, _ := newTestAiService(t, provider, ws)

		res, err := svc.DeepDive(context.Background(), &dto.DeepDiveRequest{
			WorkspaceId: ws.Id,
			Concept:     "self-attention",
		})
		require.NoError(t, err)
		assert.Equal(t, "An in-depth explanation.", res.Explanation)
		assert.Contains(t, provider.lastPrompt, "self-attention")
		assert.Contains(t, provider.lastPrompt, "Attention is all you need.")
	})

	t.Run("ModelFailureSurfaces", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{generateErr: errors.New("quota exceeded")}
		svc, _, _ := newTestAiService(t, provider, ws)

		_, err := svc.DeepDive(context.Background(), &dto.DeepDiveRequest{
			WorkspaceId: ws.Id,
			Concept:     "x",
		})
		assert.Error(t, err)
	})
}

func TestChatStream(t *testing.T) {
	t.Run("FragmentsArriveInOrder", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{streamChunks: []string{"Hel", "lo"}}
		svc, _, _ := newTestAiService(t, provider, ws)

		var assembled strings.Builder
		err := svc.ChatStream(context.Background(), &dto.ChatRequest{
			WorkspaceId: ws.Id,
			Messages:    []dto.ChatMessageDto{{Role: "user", Content: "greet me"}},
		}, func(chunk string) error {
			assembled.WriteString(chunk)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Hello", assembled.String())
		assert.Contains(t, provider.lastPrompt, "User: greet me")
	})

	t.Run("CallbackErrorStopsStream", func(t *testing.T) {
		ws := storedWorkspace()
		provider := &fakeProvider{streamChunks: []string{"a", "b", "c"}}
		svc, _, _ := newTestAiService(t, provider, ws)

		received := 0
		err := svc.ChatStream(context.Background(), &dto.ChatRequest{
			WorkspaceId: ws.Id,
			Messages:    []dto.ChatMessageDto{{Role: "user", Content: "q"}},
		}, func(chunk string) error {
			received++
			return errors.New("client gone")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, received)
	})
}
