package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docreel/domain/dto"
	"docreel/domain/models"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/pkg/logger"
	"docreel/pkg/utils"
)

type ScriptHandler struct {
	scriptService services.ScriptService
}

func NewScriptHandler(scriptService services.ScriptService) *ScriptHandler {
	return &ScriptHandler{
		scriptService: scriptService,
	}
}

// Generate สั่ง generate script ให้ chunk — provider ล่มก็ได้ fallback เสมอ
func (h *ScriptHandler) Generate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.GenerateScriptRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	script, err := h.scriptService.GenerateForChunk(ctx, req.ChunkID, req.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrChunkNotFound) {
			return utils.NotFoundResponse(c, "Chunk not found")
		}
		logger.ErrorContext(ctx, "Script generation failed", "chunk_id", req.ChunkID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Script generated", "chunk_id", req.ChunkID, "segments", len(script.ScriptChunks))
	return utils.SuccessResponse(c, dto.ScriptToScriptResponse(script))
}

// GetScript ดึง script ของ chunk
func (h *ScriptHandler) GetScript(c *fiber.Ctx) error {
	ctx := c.UserContext()

	chunkID, err := uuid.Parse(c.Params("chunkId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid chunk ID")
	}

	script, err := h.scriptService.GetScript(ctx, chunkID)
	if err != nil {
		logger.WarnContext(ctx, "Script not found", "chunk_id", chunkID)
		return utils.NotFoundResponse(c, "Script not found")
	}

	return utils.SuccessResponse(c, dto.ScriptToScriptResponse(script))
}

// UpdateScript เขียนทับ script ด้วยมือ (manual edit หลัง generate)
func (h *ScriptHandler) UpdateScript(c *fiber.Ctx) error {
	ctx := c.UserContext()

	chunkID, err := uuid.Parse(c.Params("chunkId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid chunk ID")
	}

	var req dto.UpdateScriptRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	script := &models.Script{
		Title:           req.Title,
		ScriptChunks:    req.ScriptChunks,
		CameraDirection: req.CameraDirection,
		Environment:     req.Environment,
	}

	if err := h.scriptService.UpdateScript(ctx, chunkID, script); err != nil {
		if errors.Is(err, repositories.ErrChunkNotFound) {
			return utils.NotFoundResponse(c, "Chunk not found")
		}
		logger.ErrorContext(ctx, "Script update failed", "chunk_id", chunkID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Script updated", "chunk_id", chunkID)
	return utils.SuccessResponse(c, dto.ScriptToScriptResponse(script))
}

// TestConnection probe script provider — ใช้เช็คว่า API key ใช้ได้จริง
func (h *ScriptHandler) TestConnection(c *fiber.Ctx) error {
	ctx := c.UserContext()

	connected := h.scriptService.TestConnection(ctx)
	return utils.SuccessResponse(c, fiber.Map{
		"connected": connected,
	})
}
