package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/internal/pkg/serverutils"
	"kiosk-assistant-be/pkg/errs"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatbot struct {
	requests []*dto.ChatRequest
	err      error
}

func (f *fakeChatbot) Chat(_ context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	id := req.ConversationId
	if id == "" {
		id = "new-id"
	}
	return &dto.ChatResponse{Reply: "echo: " + req.Message, UserMessage: req.Message, ConversationId: id}, nil
}

func (f *fakeChatbot) History(_ context.Context, id string) (*dto.ChatHistoryResponse, error) {
	if id != "c-1" {
		return nil, fmt.Errorf("session %s: %w", id, errs.ErrNotFound)
	}
	return &dto.ChatHistoryResponse{ConversationId: id, Turns: []dto.ChatTurnResponse{{Role: "user", Text: "hi"}}}, nil
}

type fakeLocations struct {
	err error
}

func (f *fakeLocations) FindByZip(_ context.Context, zip string) ([]dto.KioskLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []dto.KioskLocation{{Name: "Mall A", City: "San Diego", State: "CA", ZipCode: zip}}, nil
}

type fakeCounter struct{ n int }

func (f fakeCounter) Count(context.Context) (int, error) { return f.n, nil }

func newApp(chat *fakeChatbot, loc *fakeLocations) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(logger.NewNopLogger())})
	api := app.Group("/api")
	NewChatbotController(chat, logger.NewNopLogger()).RegisterRoutes(api)
	NewLocationController(loc).RegisterRoutes(api)
	NewHealthController(fakeCounter{n: 3}).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestChatEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		check      func(t *testing.T, out map[string]interface{})
	}{
		{
			name:       "reply",
			body:       `{"message":"hello"}`,
			wantStatus: 200,
			check: func(t *testing.T, out map[string]interface{}) {
				assert.Equal(t, "echo: hello", out["reply"])
				assert.Equal(t, "hello", out["userMessage"])
				assert.Equal(t, "new-id", out["conversationId"])
			},
		},
		{
			name:       "structured slots without message",
			body:       `{"slots":{"brand":"Apple","model":"iPhone 14"},"conversationId":"c-9"}`,
			wantStatus: 200,
			check: func(t *testing.T, out map[string]interface{}) {
				assert.Equal(t, "c-9", out["conversationId"])
			},
		},
		{
			name:       "missing message",
			body:       `{"conversationId":"c-1"}`,
			wantStatus: 400,
			check: func(t *testing.T, out map[string]interface{}) {
				assert.Contains(t, out["error"], "message")
			},
		},
		{
			name:       "malformed body",
			body:       `{"message":`,
			wantStatus: 400,
			check: func(t *testing.T, out map[string]interface{}) {
				assert.NotEmpty(t, out["error"])
			},
		},
		{
			name:       "session store failure",
			body:       `{"message":"hello"}`,
			serviceErr: errors.New("redis down"),
			wantStatus: 500,
			check: func(t *testing.T, out map[string]interface{}) {
				assert.Equal(t, "Internal server error", out["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(&fakeChatbot{err: tt.serviceErr}, &fakeLocations{})
			status, out := doJSON(t, app, "POST", "/api/chat", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			tt.check(t, out)
		})
	}
}

func TestHistoryEndpoint(t *testing.T) {
	app := newApp(&fakeChatbot{}, &fakeLocations{})

	status, out := doJSON(t, app, "GET", "/api/chat/c-1/history", "")
	assert.Equal(t, 200, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "c-1", data["conversationId"])
	assert.Len(t, data["turns"], 1)

	status, _ = doJSON(t, app, "GET", "/api/chat/unknown/history", "")
	assert.Equal(t, 404, status)
}

func TestLocationEndpoint(t *testing.T) {
	app := newApp(&fakeChatbot{}, &fakeLocations{})

	status, out := doJSON(t, app, "GET", "/api/locations?zip=92101", "")
	assert.Equal(t, 200, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "92101", data["zipCode"])
	assert.Len(t, data["locations"], 1)

	status, _ = doJSON(t, app, "GET", "/api/locations?zip=12", "")
	assert.Equal(t, 400, status)

	app = newApp(&fakeChatbot{}, &fakeLocations{err: errs.NewUpstreamError("location", errors.New("timeout"))})
	status, _ = doJSON(t, app, "GET", "/api/locations?zip=92101", "")
	assert.Equal(t, 502, status)

	app = newApp(&fakeChatbot{}, &fakeLocations{err: fmt.Errorf("kiosks: %w", errs.ErrNotFound)})
	status, _ = doJSON(t, app, "GET", "/api/locations?zip=92101", "")
	assert.Equal(t, 404, status)
}

func TestHealthEndpoint(t *testing.T) {
	app := newApp(&fakeChatbot{}, &fakeLocations{})
	status, out := doJSON(t, app, "GET", "/health", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", out["message"])
}

func TestChatWebSocket(t *testing.T) {
	chat := &fakeChatbot{}
	app := newApp(chat, &fakeLocations{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.Shutdown() }()

	conn, _, err := fastws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/chat/ws?conversationId=c-7", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(fastws.TextMessage, []byte(`{"message":"hello"}`)))
	var res dto.ChatResponse
	require.NoError(t, conn.ReadJSON(&res))
	assert.Equal(t, "echo: hello", res.Reply)
	assert.Equal(t, "c-7", res.ConversationId)

	require.NoError(t, conn.WriteMessage(fastws.TextMessage, []byte(`not json`)))
	var bad dto.ChatErrorResponse
	require.NoError(t, conn.ReadJSON(&bad))
	assert.NotEmpty(t, bad.Error)

	status, _ := doJSON(t, app, "GET", "/api/chat/ws", "")
	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}
