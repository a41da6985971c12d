package websocket

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	websocketManager "docreel/infrastructure/websocket"
)

type WebSocketHandler struct{}

func NewWebSocketHandler() *WebSocketHandler {
	return &WebSocketHandler{}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket จัดการ connection — client join session room ผ่าน
// query param หรือส่ง join_session message ทีหลังก็ได้
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	sessionID := c.Query("session", "")

	websocketManager.Manager.RegisterClient(c, sessionID)

	defer func() {
		websocketManager.Manager.UnregisterClient(c)
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			break
		}

		websocketManager.HandleWebSocketMessage(c, messageType, message)
	}
}
