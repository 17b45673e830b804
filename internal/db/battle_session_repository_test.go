package db

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/model"
)

func TestBattleSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewBattleSessionRepository(setupTestDB(t))

	bs, err := repo.Create(ctx, "rival", "ember")
	require.NoError(t, err)
	assert.NotEmpty(t, bs.ID)
	assert.Equal(t, model.SessionOpen, bs.Status)
	assert.True(t, bs.CompletedAt.IsZero())

	res := model.BattleResult{Won: true, DamageDealt: 42, DamageTaken: 7, FinalHP: 93, Experience: 36, Coins: 50}
	done, err := repo.Complete(ctx, bs.ID, res)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, done.Status)
	assert.Equal(t, res, done.Result)
	assert.False(t, done.CompletedAt.IsZero())

	_, err = repo.Complete(ctx, bs.ID, model.BattleResult{})
	assert.ErrorIs(t, err, model.ErrSessionClosed)

	got, err := repo.Get(ctx, bs.ID)
	require.NoError(t, err)
	assert.Equal(t, res, got.Result)

	n, err := repo.CountByCombatant(ctx, "ember")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBattleSessionRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewBattleSessionRepository(setupTestDB(t))

	_, err := repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = repo.Get(ctx, "7f1c8b0e-3d55-4a3e-9d6f-2b1f0f3c9a11")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = repo.Complete(ctx, "7f1c8b0e-3d55-4a3e-9d6f-2b1f0f3c9a11", model.BattleResult{})
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestBattleSessionRepository_CompleteOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewBattleSessionRepository(setupTestDB(t))

	bs, err := repo.Create(ctx, "rival", "ember")
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Complete(ctx, bs.ID, model.BattleResult{Won: true}); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
}
