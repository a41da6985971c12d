package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docreel/domain/dto"
	"docreel/domain/ports"
	"docreel/domain/services"
	"docreel/pkg/config"
	"docreel/pkg/logger"
	"docreel/pkg/utils"
)

type UploadHandler struct {
	sessionService services.SessionService
	uploadConfig   config.UploadConfig
}

func NewUploadHandler(sessionService services.SessionService, uploadConfig config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		sessionService: sessionService,
		uploadConfig:   uploadConfig,
	}
}

// UploadFile รับไฟล์ document (.pdf/.docx/.txt/.md) แล้วสร้าง session ใหม่
func (h *UploadHandler) UploadFile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, err := c.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "No file provided", "error", err)
		return utils.BadRequestResponse(c, "No file provided")
	}

	if file.Size == 0 {
		logger.WarnContext(ctx, "Empty file not allowed", "filename", file.Filename)
		return utils.BadRequestResponse(c, "Empty file not allowed")
	}

	if h.uploadConfig.MaxUploadSize > 0 && file.Size > h.uploadConfig.MaxUploadSize {
		logger.WarnContext(ctx, "File too large", "filename", file.Filename, "size", file.Size)
		return utils.BadRequestResponse(c, "File exceeds maximum upload size")
	}

	src, err := file.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "filename", file.Filename, "error", err)
		return utils.InternalServerErrorResponse(c)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read uploaded file", "filename", file.Filename, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Document upload", "filename", file.Filename, "size", file.Size)

	session, err := h.sessionService.CreateFromFile(ctx, file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrUnsupportedType):
			logger.WarnContext(ctx, "Unsupported file type", "filename", file.Filename)
			return utils.UnsupportedMediaTypeResponse(c, "Unsupported file type")
		case errors.Is(err, services.ErrEmptyDocument):
			return utils.BadRequestResponse(c, "Document contains no extractable text")
		case errors.Is(err, ports.ErrParseFailed):
			logger.WarnContext(ctx, "Document parse failed", "filename", file.Filename, "error", err)
			return utils.BadRequestResponse(c, "Failed to parse document")
		default:
			logger.ErrorContext(ctx, "Session creation failed", "filename", file.Filename, "error", err)
			return utils.InternalServerErrorResponse(c)
		}
	}

	logger.InfoContext(ctx, "Session created", "session_id", session.ID, "chunks", len(session.Chunks))
	return utils.CreatedResponse(c, dto.SessionToSessionResponse(session))
}

// UploadText รับ raw text แล้วสร้าง session ใหม่ (สำหรับ paste text ตรงๆ)
func (h *UploadHandler) UploadText(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.UploadTextRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "pasted-text.txt"
	}

	session, err := h.sessionService.CreateFromText(ctx, fileName, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyDocument) {
			return utils.BadRequestResponse(c, "Document contains no extractable text")
		}
		logger.ErrorContext(ctx, "Session creation failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "Session created from text", "session_id", session.ID, "chunks", len(session.Chunks))
	return utils.CreatedResponse(c, dto.SessionToSessionResponse(session))
}

// GetSession ดึง session พร้อม chunks ทั้งหมด
func (h *UploadHandler) GetSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid session ID")
	}

	session, err := h.sessionService.Get(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "Session not found", "session_id", id)
		return utils.NotFoundResponse(c, "Session not found")
	}

	return utils.SuccessResponse(c, dto.SessionToSessionResponse(session))
}
