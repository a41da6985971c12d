package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"docreel/pkg/utils"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeConflict
			case fiber.StatusUnsupportedMediaType:
				errCode = utils.ErrCodeUnsupported
			case fiber.StatusInsufficientStorage:
				errCode = utils.ErrCodeInsufficient
			}
		}

		log.Printf("Error: %v", err)

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
