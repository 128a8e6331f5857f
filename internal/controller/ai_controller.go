package controller

import (
	"bufio"
	"encoding/json"
	"log"

	"github.com/FishWY/lunwen-workspace/internal/dto"
	"github.com/FishWY/lunwen-workspace/internal/pkg/serverutils"
	"github.com/FishWY/lunwen-workspace/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	GenerateMindmap(ctx *fiber.Ctx) error
	DeepDive(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAiService
}

func NewAiController(aiService service.IAiService) IAiController {
	return &aiController{
		aiService: aiService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("/mindmap", c.GenerateMindmap)
	h.Post("/deepdive", c.DeepDive)
	h.Post("/chat", c.Chat)
}

func (c *aiController) GenerateMindmap(ctx *fiber.Ctx) error {
	var req dto.GenerateMindmapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.GenerateMindmap(ctx.Context(), req.WorkspaceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate mind map", res))
}

func (c *aiController) DeepDive(ctx *fiber.Ctx) error {
	var req dto.DeepDiveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.DeepDive(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success deep dive", res))
}

// Chat streams the answer as SSE: one data: {"text": ...} frame per model
// fragment, terminated by data: [DONE]. Validation failures still return
// plain JSON errors since nothing has been streamed yet.
func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	// The stream writer runs after the handler returns, so it needs a
	// context that outlives ctx.Context().
	streamCtx := ctx.Context()

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		err := c.aiService.ChatStream(streamCtx, &req, func(chunk string) error {
			frame, err := json.Marshal(dto.ChatChunk{Text: chunk})
			if err != nil {
				return err
			}
			if _, err := w.WriteString("data: " + string(frame) + "\n\n"); err != nil {
				return err
			}
			// Flush per fragment; a failed flush means the client is gone
			// and the stream should stop quietly.
			return w.Flush()
		})
		if err != nil {
			log.Printf("[WARN] chat stream ended early: %v", err)
			return
		}

		w.WriteString("data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}
