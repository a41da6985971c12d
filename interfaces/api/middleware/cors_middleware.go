package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CorsMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		// Dev frontends (Vite/CRA) — production ควร override ผ่าน reverse proxy
		AllowOrigins:  "http://localhost:5173,http://localhost:5174,http://localhost:3000",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS,HEAD",
		AllowHeaders:  "Origin,Content-Type,Accept,Cache-Control,X-Requested-With,X-Request-ID",
		ExposeHeaders: "Content-Length,Content-Disposition,Content-Type,X-Request-ID",
	})
}
