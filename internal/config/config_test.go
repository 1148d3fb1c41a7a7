package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 1000, cfg.Knowledge.ChunkSize)
	assert.Equal(t, 1536, cfg.Ai.EmbeddingDimension)
	assert.Equal(t, 15*time.Second, cfg.Gateways.Timeout)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, DefaultKnowledgeSources, cfg.Knowledge.Sources)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GATEWAY_TIMEOUT", "5")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("KNOWLEDGE_SOURCES", "https://a.example/faq, ,https://b.example/how")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5*time.Second, cfg.Gateways.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example/faq", "https://b.example/how"}, cfg.Knowledge.Sources)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.App.Port = ""
	cfg.Session.Backend = "etcd"
	cfg.Ai.LLMProvider = "gemini"
	cfg.Knowledge.ChunkSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PORT")
	assert.Contains(t, err.Error(), "etcd")
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "KNOWLEDGE_CHUNK_SIZE")
}
