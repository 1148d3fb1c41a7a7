package websocket

import (
	"context"
	"encoding/json"
	"time"

	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// TurnHandler runs one dialogue turn
type TurnHandler func(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

// Client is one chat connection. Frames in are ChatRequest JSON, frames out are
// ChatResponse or ChatErrorResponse JSON.
type Client struct {
	Conn *websocket.Conn

	// ConversationId sticks to the connection once the first reply assigns it
	ConversationId string

	// Buffered channel of outbound messages.
	Send chan []byte

	handle TurnHandler
	logger logger.ILogger
}

// readPump runs turns in order; a slow turn delays the next frame, never reorders it.
func (c *Client) readPump(ctx context.Context) {
	defer close(c.Send)

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WEBSOCKET", "Unexpected close", map[string]interface{}{
					"conversation_id": c.ConversationId,
					"error":           err.Error(),
				})
			}
			return
		}
		c.Send <- c.turn(ctx, frame)
	}
}

func (c *Client) turn(ctx context.Context, frame []byte) []byte {
	var req dto.ChatRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return errorFrame("invalid message payload")
	}
	if req.ConversationId == "" {
		req.ConversationId = c.ConversationId
	}
	// same limits as POST /api/chat
	if err := serverutils.ValidateRequest(req); err != nil {
		return errorFrame(err.Error())
	}

	res, err := c.handle(ctx, &req)
	if err != nil {
		return errorFrame(err.Error())
	}
	c.ConversationId = res.ConversationId

	out, err := json.Marshal(res)
	if err != nil {
		return errorFrame("failed to encode reply")
	}
	return out
}

func errorFrame(msg string) []byte {
	out, _ := json.Marshal(dto.ChatErrorResponse{Error: msg})
	return out
}

// writePump pumps replies to the connection and keeps it alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// reader is gone
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
