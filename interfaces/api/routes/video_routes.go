package routes

import (
	"github.com/gofiber/fiber/v2"

	"docreel/interfaces/api/handlers"
)

func SetupVideoRoutes(api fiber.Router, h *handlers.Handlers) {
	videos := api.Group("/videos")

	videos.Post("/generate", h.VideoHandler.Generate)              // submit video generation
	videos.Get("/test-connection", h.VideoHandler.TestConnection)  // probe provider
	videos.Get("/status/:jobId", h.VideoHandler.GetStatus)         // poll job status
}
