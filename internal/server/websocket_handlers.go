package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects plain HTTP requests on the WebSocket route.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		// Locals set before the upgrade survive into the websocket handler.
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WebSocketHandler registers the connection with the hub and runs the
// read/write pumps until the peer disconnects.
func (s *Server) WebSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(string)
		if userID == "" {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
			_ = conn.Close()
			return
		}

		var done = make(chan struct{})
		go func() {
			client.WritePump()
			close(done)
		}()
		client.ReadPump()
		close(client.Send)
		<-done
	})
}
