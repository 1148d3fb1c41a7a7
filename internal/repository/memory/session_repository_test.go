package memory

import (
	"context"
	"testing"
	"time"

	"kiosk-assistant-be/pkg/device"
	"kiosk-assistant-be/pkg/errs"
	"kiosk-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(0)

	_, err := repo.Get(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))

	s := store.NewSession("abc", time.Now())
	s.AppendTurn(store.RoleUser, "hi", time.Now())
	s.PartialSlots = &device.SlotSet{Brand: "Apple"}
	require.NoError(t, repo.Save(ctx, s))

	// the stored copy is isolated from later mutation
	s.AppendTurn(store.RoleAssistant, "hello", time.Now())
	s.PartialSlots.Brand = "Samsung"

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Len(t, got.Turns, 1)
	assert.Equal(t, "Apple", got.PartialSlots.Brand)
	assert.Equal(t, 1, repo.Count())

	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.Get(ctx, "abc")
	assert.True(t, errs.IsNotFound(err))
}

func TestSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(20 * time.Millisecond)
	require.NoError(t, repo.Save(ctx, store.NewSession("ttl", time.Now())))

	time.Sleep(40 * time.Millisecond)
	_, err := repo.Get(ctx, "ttl")
	assert.True(t, errs.IsNotFound(err))
}
