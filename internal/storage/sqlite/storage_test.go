package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	s, err := New(l, filepath.Join(t.TempDir(), "hackathon.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func event(seq uint64, kind domain.EventKind) domain.Event {
	return domain.Event{
		ID:        uuid.New(),
		Seq:       seq,
		Kind:      kind,
		Caller:    "deployer",
		Details:   map[string]string{},
		CreatedAt: time.Now(),
	}
}

func TestAppendMints(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	balance, err := s.BalanceOf(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, balance)

	require.NoError(t, s.Append(ctx, event(1, domain.EventPhaseChanged), []domain.Mint{
		{Account: "alice", Class: 1, Amount: 1},
		{Account: "bob", Class: 1, Amount: 1},
		{Account: "alice", Class: 3, Amount: 1},
	}))
	require.NoError(t, s.Append(ctx, event(2, domain.EventPhaseChanged), []domain.Mint{{Account: "alice", Class: 1, Amount: 2}}))

	tests := []struct {
		account domain.Account
		class   domain.TokenClass
		want    uint64
	}{
		{account: "alice", class: 1, want: 3},
		{account: "bob", class: 1, want: 1},
		{account: "alice", class: 3, want: 1},
		{account: "bob", class: 3, want: 0},
	}
	for _, tt := range tests {
		balance, err := s.BalanceOf(ctx, tt.account, tt.class)
		require.NoError(t, err)
		assert.Equal(t, tt.want, balance, "%s class %d", tt.account, tt.class)
	}
}

func TestAppendCanceledContextStoresNothing(t *testing.T) {
	s := newStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Append(ctx, event(1, domain.EventPhaseChanged), []domain.Mint{{Account: "alice", Class: 1, Amount: 1}})
	require.Error(t, err)

	balance, err := s.BalanceOf(context.Background(), "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, balance)
	events, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRejectedEventMintsNothing(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	require.NoError(t, s.Append(ctx, event(1, domain.EventTeamCreated), nil))

	err := s.Append(ctx, event(1, domain.EventPhaseChanged), []domain.Mint{{Account: "alice", Class: 1, Amount: 1}})
	require.ErrorIs(t, err, storage.ErrDuplicateEvent)

	balance, err := s.BalanceOf(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, balance)
	events, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTeamCreated, events[0].Kind)
}

func TestJournal(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	events, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	second := domain.Event{
		ID:        uuid.New(),
		Seq:       2,
		Kind:      domain.EventTeamJoined,
		Caller:    "bob",
		Details:   map[string]string{"team": "1"},
		CreatedAt: created,
	}
	first := domain.Event{
		ID:        uuid.New(),
		Seq:       1,
		Kind:      domain.EventTeamCreated,
		Caller:    "alice",
		Details:   map[string]string{"team": "1", "name": "foo"},
		CreatedAt: created,
	}
	require.NoError(t, s.Append(ctx, second, nil))
	require.NoError(t, s.Append(ctx, first, nil))

	events, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, first.Kind, events[0].Kind)
	assert.Equal(t, first.Details, events[0].Details)
	assert.True(t, created.Equal(events[0].CreatedAt))
	assert.Equal(t, second.ID, events[1].ID)
	assert.Equal(t, domain.Account("bob"), events[1].Caller)
}

func TestJournalRejectsDuplicateSeq(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	e := domain.Event{ID: uuid.New(), Seq: 1, Kind: domain.EventVoteCast, Caller: "juror", CreatedAt: time.Now()}
	require.NoError(t, s.Append(ctx, e, nil))
	e.ID = uuid.New()
	assert.ErrorIs(t, s.Append(ctx, e, nil), storage.ErrDuplicateEvent)
}
