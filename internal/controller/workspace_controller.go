package controller

import (
	"path/filepath"
	"strings"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/internal/pkg/serverutils"
	"github.com/FishWY/lunwen-workspace/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	SaveCanvas(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ExportMarkdown(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
	uploadDir        string
	maxUploadBytes   int
}

func NewWorkspaceController(workspaceService service.IWorkspaceService, uploadDir string, maxUploadBytes int) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
		uploadDir:        uploadDir,
		maxUploadBytes:   maxUploadBytes,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	// Upload sits at the API root; the client posts to /api/upload directly.
	r.Post("/upload", serverutils.OptionalJwtMiddleware, c.Upload)

	h := r.Group("/workspace")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/canvas", c.SaveCanvas)
	h.Delete(":id", c.Delete)
	h.Get(":id/export/markdown", c.ExportMarkdown)
}

func (c *workspaceController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file field")
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "only PDF files are accepted")
	}
	if fileHeader.Size > int64(c.maxUploadBytes) {
		return fiber.NewError(fiber.StatusBadRequest, "file exceeds upload size limit")
	}

	storedName := uuid.NewString() + ".pdf"
	storedPath := filepath.Join(c.uploadDir, storedName)
	if err := ctx.SaveFile(fileHeader, storedPath); err != nil {
		return err
	}

	userId := uploadUserId(ctx)
	title := ctx.FormValue("title", fileHeader.Filename)

	res, err := c.workspaceService.Upload(ctx.Context(), userId, title, storedPath, "/uploads/"+storedName)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload workspace", res))
}

func (c *workspaceController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workspace id")
	}

	res, err := c.workspaceService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show workspace", res))
}

func (c *workspaceController) List(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.List(ctx.Context(), optionalUserId(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list workspaces", res))
}

func (c *workspaceController) SaveCanvas(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workspace id")
	}

	var req dto.SaveCanvasRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.SaveCanvas(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save canvas", res))
}

func (c *workspaceController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workspace id")
	}

	if err := c.workspaceService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete workspace", nil))
}

func (c *workspaceController) ExportMarkdown(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workspace id")
	}

	md, err := c.workspaceService.ExportMarkdown(ctx.Context(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return ctx.SendString(md)
}

// uploadUserId prefers the explicit userId form field, then falls back to the
// optional JWT. With neither, the service provisions the anonymous owner.
func uploadUserId(ctx *fiber.Ctx) *uuid.UUID {
	if raw := ctx.FormValue("userId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	return optionalUserId(ctx)
}

// optionalUserId reads the user id the optional JWT middleware may have set.
func optionalUserId(ctx *fiber.Ctx) *uuid.UUID {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
