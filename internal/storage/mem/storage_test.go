package mem

import (
	"context"
	"sync"
	"testing"

	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMints(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Append(ctx, domain.Event{Seq: 1, Kind: domain.EventPhaseChanged}, []domain.Mint{
		{Account: "alice", Class: 1, Amount: 1},
		{Account: "alice", Class: 1, Amount: 1},
		{Account: "bob", Class: 2, Amount: 1},
	}))

	balance, err := s.BalanceOf(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), balance)
	balance, err = s.BalanceOf(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestAppendCanceled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Append(ctx, domain.Event{Seq: 1}, []domain.Mint{{Account: "alice", Class: 1, Amount: 1}})
	assert.ErrorIs(t, err, context.Canceled)

	balance, err := s.BalanceOf(context.Background(), "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, balance)
	events, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDuplicateSeqMintsNothing(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Append(ctx, domain.Event{Seq: 1, Kind: domain.EventTeamCreated}, nil))

	err := s.Append(ctx, domain.Event{Seq: 1, Kind: domain.EventPhaseChanged}, []domain.Mint{{Account: "alice", Class: 1, Amount: 1}})
	assert.ErrorIs(t, err, storage.ErrDuplicateEvent)

	balance, err := s.BalanceOf(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, balance)
	events, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			_ = s.Append(ctx, domain.Event{Seq: seq}, []domain.Mint{{Account: "alice", Class: 1, Amount: 1}})
		}(uint64(i + 1))
	}
	wg.Wait()
	balance, err := s.BalanceOf(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance)
}

func TestJournal(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Append(ctx, domain.Event{Seq: 2, Kind: domain.EventVoteCast}, nil))
	require.NoError(t, s.Append(ctx, domain.Event{Seq: 1, Kind: domain.EventPrizeCreated}, nil))

	events, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventPrizeCreated, events[0].Kind)
	assert.Equal(t, domain.EventVoteCast, events[1].Kind)

	events[0].Kind = "tampered"
	again, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPrizeCreated, again[0].Kind)
}
