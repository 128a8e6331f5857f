package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FishWY/lunwen-workspace/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// --- Fakes ---

type fakeWorkspaceService struct {
	uploadResponse *dto.UploadWorkspaceResponse
	lastUserId     *uuid.UUID
	lastTitle      string
}

func (s *fakeWorkspaceService) Upload(ctx context.Context, userId *uuid.UUID, title, filePath, pdfUrl string) (*dto.UploadWorkspaceResponse, error) {
	s.lastUserId = userId
	s.lastTitle = title
	return s.uploadResponse, nil
}

func (s *fakeWorkspaceService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowWorkspaceResponse, error) {
	return nil, nil
}

func (s *fakeWorkspaceService) List(ctx context.Context, userId *uuid.UUID) ([]*dto.ListWorkspaceItem, error) {
	return nil, nil
}

func (s *fakeWorkspaceService) SaveCanvas(ctx context.Context, req *dto.SaveCanvasRequest) (*dto.SaveCanvasResponse, error) {
	return nil, nil
}

func (s *fakeWorkspaceService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *fakeWorkspaceService) ExportMarkdown(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}

// --- Helpers ---

func newUploadApp(t *testing.T, svc *fakeWorkspaceService) *fiber.App {
	t.Helper()

	app := fiber.New()
	api := app.Group("/api")
	NewWorkspaceController(svc, t.TempDir(), 1024*1024).RegisterRoutes(api)
	return app
}

func pdfUploadRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "attention.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 stub"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// --- Tests ---

func TestUpload(t *testing.T) {
	t.Run("ServedAtApiRootAndReturnsText", func(t *testing.T) {
		svc := &fakeWorkspaceService{
			uploadResponse: &dto.UploadWorkspaceResponse{
				WorkspaceId: uuid.New(),
				Title:       "attention.pdf",
				PdfUrl:      "/uploads/attention.pdf",
				Text:        "[Page 1]\nAttention is all you need.\n\n",
			},
		}
		app := newUploadApp(t, svc)

		resp, err := app.Test(pdfUploadRequest(t, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var parsed struct {
			Data dto.UploadWorkspaceResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		assert.Equal(t, svc.uploadResponse.WorkspaceId, parsed.Data.WorkspaceId)
		assert.Equal(t, "[Page 1]\nAttention is all you need.\n\n", parsed.Data.Text)
	})

	t.Run("FormUserIdSetsOwner", func(t *testing.T) {
		svc := &fakeWorkspaceService{uploadResponse: &dto.UploadWorkspaceResponse{}}
		app := newUploadApp(t, svc)

		userId := uuid.New()
		resp, err := app.Test(pdfUploadRequest(t, map[string]string{"userId": userId.String()}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		require.NotNil(t, svc.lastUserId)
		assert.Equal(t, userId, *svc.lastUserId)
	})

	t.Run("NoUserIdStaysAnonymous", func(t *testing.T) {
		svc := &fakeWorkspaceService{uploadResponse: &dto.UploadWorkspaceResponse{}}
		app := newUploadApp(t, svc)

		resp, err := app.Test(pdfUploadRequest(t, map[string]string{"title": "My Paper"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Nil(t, svc.lastUserId)
		assert.Equal(t, "My Paper", svc.lastTitle)
	})

	t.Run("MissingFileIs400", func(t *testing.T) {
		svc := &fakeWorkspaceService{}
		app := newUploadApp(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
