package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docreel/domain/dto"
	"docreel/domain/ports"
	"docreel/domain/repositories"
	"docreel/domain/services"
	"docreel/pkg/logger"
	"docreel/pkg/utils"
)

type VideoHandler struct {
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
	}
}

// Generate ส่ง script เข้า video provider — long-running, client ต้อง poll ต่อ
func (h *VideoHandler) Generate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.GenerateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	job, err := h.videoService.RequestVideo(ctx, req.ChunkID, ports.VideoRequest{
		Script:          req.Script,
		CameraDirection: req.CameraDirection,
		Environment:     req.Environment,
		Duration:        req.Duration,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrChunkNotFound) {
			return utils.NotFoundResponse(c, "Chunk not found")
		}
		logger.ErrorContext(ctx, "Video generation request failed", "chunk_id", req.ChunkID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Video generation started", "chunk_id", req.ChunkID, "job_id", job.ID)
	return utils.AcceptedResponse(c, dto.VideoJobToVideoJobResponse(job))
}

// GetStatus poll สถานะของ video job — idempotent
func (h *VideoHandler) GetStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid job ID")
	}

	job, err := h.videoService.PollStatus(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrVideoJobNotFound) {
			return utils.NotFoundResponse(c, "Video job not found")
		}
		logger.ErrorContext(ctx, "Video status poll failed", "job_id", jobID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.VideoJobToVideoJobResponse(job))
}

// TestConnection probe video provider
func (h *VideoHandler) TestConnection(c *fiber.Ctx) error {
	ctx := c.UserContext()

	connected := h.videoService.TestConnection(ctx)
	return utils.SuccessResponse(c, fiber.Map{
		"connected": connected,
	})
}
