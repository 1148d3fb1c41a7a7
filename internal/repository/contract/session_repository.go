package contract

import (
	"context"

	"kiosk-assistant-be/pkg/store"
)

// SessionRepository persists conversation state. Get returns an error wrapping errs.ErrNotFound
// for unknown ids. Implementations hand out copies: mutating a returned session has no effect until Save.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
}
