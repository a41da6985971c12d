package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// WebSocketManager จัดการ connection ทั้งหมด แบ่ง room ตาม session
// client จะ join room ของ session ที่กำลังดูอยู่เพื่อรับ pipeline progress
type WebSocketManager struct {
	clients    map[*websocket.Conn]Client
	rooms      map[string]map[*websocket.Conn]bool // key: sessionID
	register   chan Client
	unregister chan *websocket.Conn
	broadcast  chan BroadcastMessage
	mutex      sync.RWMutex
}

type Client struct {
	Conn      *websocket.Conn
	SessionID string
}

type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	SessionID string      `json:"sessionId,omitempty"`
}

type BroadcastMessage struct {
	Message   Message
	SessionID string
}

var Manager *WebSocketManager

func init() {
	Manager = &WebSocketManager{
		clients:    make(map[*websocket.Conn]Client),
		rooms:      make(map[string]map[*websocket.Conn]bool),
		register:   make(chan Client),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan BroadcastMessage),
	}
	go Manager.run()
}

func (m *WebSocketManager) run() {
	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()
			m.clients[client.Conn] = client

			if client.SessionID != "" {
				if m.rooms[client.SessionID] == nil {
					m.rooms[client.SessionID] = make(map[*websocket.Conn]bool)
				}
				m.rooms[client.SessionID][client.Conn] = true
			}
			m.mutex.Unlock()

			log.Printf("[WebSocket] Client connected: SessionID=%s", client.SessionID)

		case conn := <-m.unregister:
			m.mutex.Lock()
			if client, ok := m.clients[conn]; ok {
				delete(m.clients, conn)

				if client.SessionID != "" && m.rooms[client.SessionID] != nil {
					delete(m.rooms[client.SessionID], conn)
					if len(m.rooms[client.SessionID]) == 0 {
						delete(m.rooms, client.SessionID)
					}
				}

				conn.Close()
				log.Printf("[WebSocket] Client disconnected: SessionID=%s", client.SessionID)
			}
			m.mutex.Unlock()

		case message := <-m.broadcast:
			m.mutex.RLock()
			if message.SessionID != "" {
				if clients, ok := m.rooms[message.SessionID]; ok {
					for conn := range clients {
						m.sendMessage(conn, message.Message)
					}
				}
			} else {
				for conn := range m.clients {
					m.sendMessage(conn, message.Message)
				}
			}
			m.mutex.RUnlock()
		}
	}
}

func (m *WebSocketManager) sendMessage(conn *websocket.Conn, message Message) {
	if err := conn.WriteJSON(message); err != nil {
		log.Printf("[WebSocket] Error sending message: %v", err)
		m.unregister <- conn
	}
}

func (m *WebSocketManager) RegisterClient(conn *websocket.Conn, sessionID string) {
	m.register <- Client{
		Conn:      conn,
		SessionID: sessionID,
	}
}

func (m *WebSocketManager) UnregisterClient(conn *websocket.Conn) {
	m.unregister <- conn
}

// BroadcastToSession ส่ง message ไปทุก client ที่ join room ของ session นี้
func (m *WebSocketManager) BroadcastToSession(sessionID string, messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{
			Type:      messageType,
			Data:      data,
			SessionID: sessionID,
		},
		SessionID: sessionID,
	}
}

func (m *WebSocketManager) BroadcastToAll(messageType string, data interface{}) {
	m.broadcast <- BroadcastMessage{
		Message: Message{
			Type: messageType,
			Data: data,
		},
	}
}

func (m *WebSocketManager) GetSessionClients(sessionID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if clients, ok := m.rooms[sessionID]; ok {
		return len(clients)
	}
	return 0
}

func (m *WebSocketManager) GetTotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.clients)
}

// HandleWebSocketMessage จัดการ message จาก client (ping, join/leave session room)
func HandleWebSocketMessage(conn *websocket.Conn, messageType int, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Printf("[WebSocket] Error unmarshaling message: %v", err)
		return
	}

	switch message.Type {
	case "ping":
		conn.WriteJSON(Message{
			Type: "pong",
			Data: "pong",
		})

	case "join_session":
		if payload, ok := message.Data.(map[string]interface{}); ok {
			if sessionID, ok := payload["sessionId"].(string); ok {
				Manager.mutex.Lock()
				if client, exists := Manager.clients[conn]; exists {
					if client.SessionID != "" && Manager.rooms[client.SessionID] != nil {
						delete(Manager.rooms[client.SessionID], conn)
						if len(Manager.rooms[client.SessionID]) == 0 {
							delete(Manager.rooms, client.SessionID)
						}
					}

					client.SessionID = sessionID
					Manager.clients[conn] = client

					if Manager.rooms[sessionID] == nil {
						Manager.rooms[sessionID] = make(map[*websocket.Conn]bool)
					}
					Manager.rooms[sessionID][conn] = true
				}
				Manager.mutex.Unlock()

				conn.WriteJSON(Message{
					Type: "session_joined",
					Data: map[string]interface{}{
						"sessionId": sessionID,
						"message":   fmt.Sprintf("Joined session %s", sessionID),
					},
				})
			}
		}

	case "leave_session":
		Manager.mutex.Lock()
		if client, exists := Manager.clients[conn]; exists {
			if client.SessionID != "" && Manager.rooms[client.SessionID] != nil {
				delete(Manager.rooms[client.SessionID], conn)
				if len(Manager.rooms[client.SessionID]) == 0 {
					delete(Manager.rooms, client.SessionID)
				}

				client.SessionID = ""
				Manager.clients[conn] = client
			}
		}
		Manager.mutex.Unlock()

		conn.WriteJSON(Message{
			Type: "session_left",
			Data: "Left session successfully",
		})

	default:
		log.Printf("[WebSocket] Unknown message type: %s", message.Type)
	}
}
