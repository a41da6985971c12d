package routes

import (
	"github.com/gofiber/fiber/v2"

	"docreel/interfaces/api/handlers"
)

func SetupExportRoutes(api fiber.Router, h *handlers.Handlers) {
	exports := api.Group("/exports")

	exports.Post("/start", h.ExportHandler.Start)               // เริ่ม export session
	exports.Get("/status/:exportId", h.ExportHandler.GetStatus) // poll export progress
	exports.Get("/download/:exportId", h.ExportHandler.Download) // download ไฟล์ผลลัพธ์
}
