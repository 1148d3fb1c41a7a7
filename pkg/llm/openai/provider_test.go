package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kiosk-assistant-be/pkg/errs"
	"kiosk-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ecoATM kiosks pay cash."}}]}`))
	}))
	defer srv.Close()

	p := NewProvider("secret", srv.URL, "test-model")
	history := llm.WithSystemPrompt("be brief", []llm.Message{{Role: llm.RoleUser, Content: "what is ecoATM"}})
	reply, err := p.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "ecoATM kiosks pay cash.", reply)
}

func TestChatUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewProvider("", srv.URL, "").Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errs.IsUpstream(err))
}
