package dto

import "time"

// ChatRequest is one user turn. Slots carries structured device fields (brand, model, storage, carrier).
type ChatRequest struct {
	Message        string            `json:"message" validate:"required_without=Slots,max=2000"`
	ConversationId string            `json:"conversationId,omitempty" validate:"omitempty,max=128"`
	Slots          map[string]string `json:"slots,omitempty"`
}

type ChatResponse struct {
	Reply          string `json:"reply"`
	UserMessage    string `json:"userMessage"`
	ConversationId string `json:"conversationId"`
}

type ChatTurnResponse struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatHistoryResponse struct {
	ConversationId string             `json:"conversationId"`
	Turns          []ChatTurnResponse `json:"turns"`
}

// ChatErrorResponse is the WebSocket error frame
type ChatErrorResponse struct {
	Error string `json:"error"`
}
