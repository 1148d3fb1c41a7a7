package websocket

import (
	"context"

	"kiosk-assistant-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

// ServeChat runs a chat connection until the peer goes away.
func ServeChat(c *websocket.Conn, conversationId string, handle TurnHandler, log logger.ILogger) {
	client := &Client{
		Conn:           c,
		ConversationId: conversationId,
		Send:           make(chan []byte, 16),
		handle:         handle,
		logger:         log,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.writePump()
	}()
	client.readPump(context.Background())
	<-done
}
