package store

import (
	"time"

	"kiosk-assistant-be/pkg/device"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation transcript
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Session represents the dialogue state of one conversation
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"` // append-only

	// Pending prompts. The router lets at most one of them drive a turn.
	AwaitingZipCode    bool `json:"awaiting_zip_code"`
	AwaitingDeviceInfo bool `json:"awaiting_device_info"`

	// Device identification collected so far while AwaitingDeviceInfo
	PartialSlots *device.SlotSet `json:"partial_slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an empty session
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Turns:     []Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendTurn adds a turn to the transcript
func (s *Session) AppendTurn(role, text string, now time.Time) {
	s.Turns = append(s.Turns, Turn{Role: role, Text: text, CreatedAt: now})
	s.UpdatedAt = now
}

// LastAssistantTurn returns the most recent assistant turn, if any
func (s *Session) LastAssistantTurn() (Turn, bool) {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == RoleAssistant {
			return s.Turns[i], true
		}
	}
	return Turn{}, false
}

// ClearDeviceFlow drops the pending estimate state
func (s *Session) ClearDeviceFlow() {
	s.AwaitingDeviceInfo = false
	s.PartialSlots = nil
}

// Clone returns a deep copy, used by repositories that keep sessions in memory
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Turns = make([]Turn, len(s.Turns))
	copy(c.Turns, s.Turns)
	if s.PartialSlots != nil {
		slots := *s.PartialSlots
		c.PartialSlots = &slots
	}
	return &c
}
