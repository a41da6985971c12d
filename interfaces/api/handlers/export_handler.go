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

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Start เริ่ม export session — reject ถ้ายังมี chunk ที่วิดีโอไม่พร้อม
func (h *ExportHandler) Start(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.StartExportRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	job, err := h.exportService.StartExport(ctx, req.SessionID, models.ExportOptions{
		IncludeIntro:    req.IncludeIntro,
		IncludeOutro:    req.IncludeOutro,
		BackgroundMusic: req.BackgroundMusic,
	})
	if err != nil {
		var diskErr *utils.DiskSpaceError
		switch {
		case errors.Is(err, repositories.ErrSessionNotFound):
			return utils.NotFoundResponse(c, "Session not found")
		case errors.Is(err, services.ErrExportNotReady):
			return utils.BadRequestResponse(c, "Not all videos are ready for export")
		case errors.As(err, &diskErr):
			logger.WarnContext(ctx, "Insufficient disk space for export", "session_id", req.SessionID, "error", err)
			return utils.InsufficientStorageResponse(c, diskErr.Error())
		default:
			logger.ErrorContext(ctx, "Export start failed", "session_id", req.SessionID, "error", err)
			return utils.InternalServerErrorResponse(c)
		}
	}

	logger.InfoContext(ctx, "Export started", "session_id", req.SessionID, "export_id", job.ID)
	return utils.AcceptedResponse(c, dto.ExportJobToExportJobResponse(job))
}

// GetStatus poll สถานะ/progress ของ export job
func (h *ExportHandler) GetStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	exportID, err := uuid.Parse(c.Params("exportId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid export ID")
	}

	job, err := h.exportService.GetStatus(ctx, exportID)
	if err != nil {
		if errors.Is(err, repositories.ErrExportJobNotFound) {
			return utils.NotFoundResponse(c, "Export job not found")
		}
		logger.ErrorContext(ctx, "Export status failed", "export_id", exportID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.ExportJobToExportJobResponse(job))
}

// Download stream ไฟล์ผลลัพธ์ — เฉพาะ job ที่ completed
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	ctx := c.UserContext()

	exportID, err := uuid.Parse(c.Params("exportId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid export ID")
	}

	reader, fileName, err := h.exportService.OpenArtifact(ctx, exportID)
	if err != nil {
		if errors.Is(err, repositories.ErrExportJobNotFound) {
			return utils.NotFoundResponse(c, "Export job not found")
		}
		logger.WarnContext(ctx, "Export artifact not available", "export_id", exportID, "error", err)
		return utils.BadRequestResponse(c, "Export is not completed")
	}

	logger.InfoContext(ctx, "Export download", "export_id", exportID, "filename", fileName)

	c.Set(fiber.HeaderContentType, "video/mp4")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.SendStream(reader)
}
