package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"kiosk-assistant-be/internal/repository/contract"
	"kiosk-assistant-be/pkg/errs"
	"kiosk-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// Manager handles session operations and serializes turns per conversation id.
type Manager struct {
	sessionRepo contract.SessionRepository
	locks       *keyedMutex
	now         func() time.Time
}

// NewManager creates a new session manager
func NewManager(sessionRepo contract.SessionRepository) *Manager {
	return &Manager{
		sessionRepo: sessionRepo,
		locks:       newKeyedMutex(),
		now:         time.Now,
	}
}

// NewID returns a fresh conversation id
func NewID() string {
	return uuid.NewString()
}

// Lock blocks until no other turn holds sessionID and returns the release func.
// Different ids never block each other.
func (m *Manager) Lock(sessionID string) (unlock func()) {
	return m.locks.lock(sessionID)
}

// LoadOrCreate retrieves a session or starts an empty one under the same id.
func (m *Manager) LoadOrCreate(ctx context.Context, sessionID string) (*store.Session, error) {
	if sessionID == "" {
		return store.NewSession(NewID(), m.now()), nil
	}
	session, err := m.sessionRepo.Get(ctx, sessionID)
	if errors.Is(err, errs.ErrNotFound) {
		return store.NewSession(sessionID, m.now()), nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns an existing session or an error wrapping errs.ErrNotFound
func (m *Manager) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	return m.sessionRepo.Get(ctx, sessionID)
}

// Save persists session state
func (m *Manager) Save(ctx context.Context, session *store.Session) error {
	return m.sessionRepo.Save(ctx, session)
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.Unlock()
			k.mu.Lock()
			m.refs--
			if m.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
