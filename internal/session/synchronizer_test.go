package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/testutil"
)

func TestSynchronizer_BeginAndComplete(t *testing.T) {
	svc := &FakeService{Result: Outcome{Accepted: true, DerivedRewards: &Rewards{Experience: 20, Coins: 5}}}
	s := NewSynchronizer(svc)
	ctx := context.Background()

	id, err := s.Begin(ctx, "opp", "mine")
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)
	require.Len(t, svc.Begins, 1)
	assert.Equal(t, BeginRequest{OpponentID: "opp", CombatantID: "mine"}, svc.Begins[0])

	s.RecordDealt(10)
	s.RecordDealt(0)
	s.RecordDealt(-1)
	s.RecordTaken(7)
	s.RecordTaken(3)

	sess := s.Session()
	assert.Equal(t, 10, sess.TotalDamageDealt)
	assert.Equal(t, 10, sess.TotalDamageTaken)

	out, err := s.Complete(ctx, true, 12)
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	require.NotNil(t, out.DerivedRewards)
	assert.Equal(t, 20, out.DerivedRewards.Experience)

	calls := svc.CompleteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, CompleteRequest{
		BattleSessionID: "session-1",
		Won:             true,
		DamageDealt:     10,
		DamageTaken:     10,
		FinalHP:         12,
	}, calls[0])
}

func TestSynchronizer_CompleteExactlyOnce(t *testing.T) {
	svc := &FakeService{CompleteErr: testutil.ErrSimulated}
	s := NewSynchronizer(svc)
	ctx := context.Background()

	_, err := s.Begin(ctx, "opp", "mine")
	require.NoError(t, err)

	_, err = s.Complete(ctx, false, 0)
	require.ErrorIs(t, err, testutil.ErrSimulated)

	_, err = s.Complete(ctx, false, 0)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Len(t, svc.CompleteCalls(), 1, "failed completion is not retried")
}

func TestSynchronizer_CompleteBeforeBegin(t *testing.T) {
	svc := &FakeService{}
	s := NewSynchronizer(svc)

	_, err := s.Complete(context.Background(), true, 1)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.Empty(t, svc.CompleteCalls())
}

func TestSynchronizer_BeginFailure(t *testing.T) {
	transport := errors.New("connection refused")
	svc := &FakeService{BeginErr: transport}
	s := NewSynchronizer(svc)

	_, err := s.Begin(context.Background(), "opp", "mine")
	assert.ErrorIs(t, err, transport)

	_, err = s.Complete(context.Background(), true, 1)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestSynchronizer_BeginTwice(t *testing.T) {
	s := NewSynchronizer(&FakeService{})
	_, err := s.Begin(context.Background(), "opp", "mine")
	require.NoError(t, err)

	_, err = s.Begin(context.Background(), "opp", "mine")
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}
