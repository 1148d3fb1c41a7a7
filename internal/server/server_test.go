package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kiosk-assistant-be/internal/bootstrap"
	"kiosk-assistant-be/internal/config"
	"kiosk-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Port: "0", CorsAllowedOrigins: "*", RateLimitRPM: 60, RateLimitBurst: 2},
		Session:  config.SessionConfig{Backend: "memory"},
		Gateways: config.GatewayConfig{Timeout: time.Second, LocationCache: time.Minute},
		Ai: config.AIConfig{
			EmbeddingProvider:  "fallback",
			EmbeddingDimension: 32,
			EmbeddingCacheSize: 8,
			LLMProvider:        "ollama",
			OllamaBaseURL:      "http://127.0.0.1:1",
		},
		Knowledge: config.KnowledgeConfig{ChunkSize: 1000, Concurrency: 1},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig()
	container, err := bootstrap.NewContainer(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "kiosk_assistant_knowledge_chunks")
}

func TestChatRouteThroughContainer(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"where is the nearest kiosk"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.GetApp().Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "zip code")
	assert.Contains(t, string(body), "conversationId")
}

func TestAPIRateLimited(t *testing.T) {
	srv := newTestServer(t)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/locations?zip=1", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Contains(t, codes, 429)

	// health stays outside the limiter
	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
