package dto

import "time"

// TurnEvent describes one completed dialogue turn
type TurnEvent struct {
	EventId        string    `json:"eventId"`
	ConversationId string    `json:"conversationId"`
	Action         string    `json:"action"`
	UserMessage    string    `json:"userMessage"`
	Reply          string    `json:"reply"`
	At             time.Time `json:"at"`
}
