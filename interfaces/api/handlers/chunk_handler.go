package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docreel/domain/dto"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/pkg/logger"
	"docreel/pkg/utils"
)

type ChunkHandler struct {
	sessionService services.SessionService
}

func NewChunkHandler(sessionService services.SessionService) *ChunkHandler {
	return &ChunkHandler{
		sessionService: sessionService,
	}
}

// GetChunk ดึง chunk ตัวเดียวตาม ID
func (h *ChunkHandler) GetChunk(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid chunk ID")
	}

	chunk, err := h.sessionService.GetChunk(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "Chunk not found", "chunk_id", id)
		return utils.NotFoundResponse(c, "Chunk not found")
	}

	return utils.SuccessResponse(c, dto.ChunkToChunkResponse(chunk))
}

// ListBySession ดึง chunks ทั้งหมดของ session พร้อมสถานะ session
func (h *ChunkHandler) ListBySession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid session ID")
	}

	session, err := h.sessionService.Get(ctx, sessionID)
	if err != nil {
		logger.WarnContext(ctx, "Session not found", "session_id", sessionID)
		return utils.NotFoundResponse(c, "Session not found")
	}

	chunks := make([]*dto.ChunkResponse, 0, len(session.Chunks))
	for _, chunk := range session.Chunks {
		chunks = append(chunks, dto.ChunkToChunkResponse(chunk))
	}

	return utils.SuccessResponse(c, fiber.Map{
		"sessionStatus": string(session.Status),
		"chunks":        chunks,
	})
}

// UpdateChunk แก้ title/content ของ chunk (manual edit ก่อน generate)
func (h *ChunkHandler) UpdateChunk(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid chunk ID")
	}

	var req dto.UpdateChunkRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	if req.Title == nil && req.Content == nil {
		return utils.BadRequestResponse(c, "Nothing to update")
	}

	chunk, err := h.sessionService.UpdateChunkContent(ctx, id, repositories.ChunkUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrChunkNotFound) {
			return utils.NotFoundResponse(c, "Chunk not found")
		}
		logger.ErrorContext(ctx, "Chunk update failed", "chunk_id", id, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Chunk updated", "chunk_id", id)
	return utils.SuccessResponse(c, dto.ChunkToChunkResponse(chunk))
}

// Reorder จัดลำดับ chunks ใหม่ทั้ง session
func (h *ChunkHandler) Reorder(c *fiber.Ctx) error {
	ctx := c.UserContext()

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid session ID")
	}

	var req dto.ReorderChunksRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	chunks, err := h.sessionService.Reorder(ctx, sessionID, req.ChunkIDs)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return utils.NotFoundResponse(c, "Session not found")
		}
		logger.ErrorContext(ctx, "Reorder failed", "session_id", sessionID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	responses := make([]*dto.ChunkResponse, 0, len(chunks))
	for _, chunk := range chunks {
		responses = append(responses, dto.ChunkToChunkResponse(chunk))
	}

	logger.InfoContext(ctx, "Chunks reordered", "session_id", sessionID, "count", len(chunks))
	return utils.SuccessResponse(c, responses)
}

// DeleteChunk ลบ chunk ออกจาก session — order ที่เหลือถูก renumber ให้ dense
func (h *ChunkHandler) DeleteChunk(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid chunk ID")
	}

	if err := h.sessionService.DeleteChunk(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrChunkNotFound) {
			return utils.NotFoundResponse(c, "Chunk not found")
		}
		logger.ErrorContext(ctx, "Chunk delete failed", "chunk_id", id, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Chunk deleted", "chunk_id", id)
	return utils.NoContentResponse(c)
}
