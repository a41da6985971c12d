package routes

import (
	"github.com/gofiber/fiber/v2"

	"docreel/interfaces/api/handlers"
)

func SetupChunkRoutes(api fiber.Router, h *handlers.Handlers) {
	chunks := api.Group("/chunks")

	chunks.Get("/session/:sessionId", h.ChunkHandler.ListBySession)   // chunks ทั้งหมดของ session
	chunks.Get("/:id", h.ChunkHandler.GetChunk)                       // ดึง chunk ตัวเดียว
	chunks.Put("/:id", h.ChunkHandler.UpdateChunk)                    // แก้ title/content
	chunks.Delete("/:id", h.ChunkHandler.DeleteChunk)                 // ลบ chunk
	chunks.Put("/session/:sessionId/reorder", h.ChunkHandler.Reorder) // จัดลำดับใหม่ทั้ง session
}
