package routes

import (
	"github.com/gofiber/fiber/v2"

	"docreel/interfaces/api/handlers"
)

func SetupScriptRoutes(api fiber.Router, h *handlers.Handlers) {
	scripts := api.Group("/scripts")

	scripts.Post("/generate", h.ScriptHandler.Generate)             // generate script ให้ chunk
	scripts.Get("/test-connection", h.ScriptHandler.TestConnection) // probe provider
	scripts.Get("/:chunkId", h.ScriptHandler.GetScript)             // ดึง script ของ chunk
	scripts.Put("/:chunkId", h.ScriptHandler.UpdateScript)          // แก้ script ด้วยมือ
}
