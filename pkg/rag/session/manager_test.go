package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kiosk-assistant-be/internal/repository/memory"
	"kiosk-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewSessionRepository(0))

	fresh, err := m.LoadOrCreate(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.ID)
	assert.Empty(t, fresh.Turns)

	named, err := m.LoadOrCreate(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, "kiosk-1", named.ID)

	named.AppendTurn(store.RoleUser, "hello", time.Now())
	named.AwaitingZipCode = true
	require.NoError(t, m.Save(ctx, named))

	again, err := m.LoadOrCreate(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Len(t, again.Turns, 1)
	assert.True(t, again.AwaitingZipCode)
}

func TestLockSerializesSameKey(t *testing.T) {
	m := NewManager(memory.NewSessionRepository(0))

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("same")
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				cur := atomic.LoadInt32(&maxActive)
				if n <= cur || atomic.CompareAndSwapInt32(&maxActive, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Zero(t, m.locks.size(), "idle keys are released")
}

func TestLockIndependentKeys(t *testing.T) {
	m := NewManager(memory.NewSessionRepository(0))

	unlockA := m.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := m.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
}

func TestConcurrentTurnsKeepEveryUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memory.NewSessionRepository(0))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("shared")
			defer unlock()

			s, err := m.LoadOrCreate(ctx, "shared")
			require.NoError(t, err)
			time.Sleep(100 * time.Microsecond)
			s.AppendTurn(store.RoleUser, "msg", time.Now())
			require.NoError(t, m.Save(ctx, s))
		}()
	}
	wg.Wait()

	s, err := m.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, s.Turns, 25)
}

func TestUnlockIsIdempotent(t *testing.T) {
	m := NewManager(memory.NewSessionRepository(0))
	unlock := m.Lock("x")
	unlock()
	unlock()
	assert.Zero(t, m.locks.size())
}
