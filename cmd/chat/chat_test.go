package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kiosk-assistant-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClientKeepsConversation(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req.ConversationId)
		if req.Message == "boom" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(dto.ChatResponse{Reply: "hi " + req.Message, UserMessage: req.Message, ConversationId: "c-1"})
	}))
	defer srv.Close()

	client := &chatClient{baseURL: srv.URL, http: srv.Client()}
	var out bytes.Buffer
	err := client.repl(context.Background(), strings.NewReader("hello\n\nboom\nagain\nexit\nnever\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "c-1", "c-1"}, seen)
	assert.Contains(t, out.String(), "hi hello")
	assert.Contains(t, out.String(), "assistant error (400): bad")
	assert.Contains(t, out.String(), "hi again")
	assert.NotContains(t, out.String(), "never")
}
