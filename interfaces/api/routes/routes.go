package routes

import (
	"github.com/gofiber/fiber/v2"

	"docreel/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	// Setup health and root routes
	SetupHealthRoutes(app)

	// API version group
	api := app.Group("/api/v1")

	// Setup all route groups
	SetupUploadRoutes(api, h)
	SetupChunkRoutes(api, h)
	SetupScriptRoutes(api, h)
	SetupVideoRoutes(api, h)
	SetupExportRoutes(api, h)

	// Setup WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app)
}
