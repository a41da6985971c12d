package routes

import (
	"github.com/gofiber/fiber/v2"

	"docreel/interfaces/api/handlers"
)

func SetupUploadRoutes(api fiber.Router, h *handlers.Handlers) {
	upload := api.Group("/upload")

	upload.Post("/", h.UploadHandler.UploadFile)           // upload ไฟล์ document
	upload.Post("/text", h.UploadHandler.UploadText)       // paste text ตรงๆ
	upload.Get("/session/:id", h.UploadHandler.GetSession) // ดึง session พร้อม chunks
}
