package mem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/storage"
)

type balanceKey struct {
	account domain.Account
	class   domain.TokenClass
}

// Storage keeps the token ledger and the journal in memory.
type Storage struct {
	mu       sync.RWMutex
	balances map[balanceKey]uint64
	events   []domain.Event
	seqs     map[uint64]struct{}
}

var _ storage.TokenLedger = (*Storage)(nil)
var _ storage.Journal = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		balances: make(map[balanceKey]uint64),
		seqs:     make(map[uint64]struct{}),
	}
}

func (s *Storage) BalanceOf(_ context.Context, account domain.Account, class domain.TokenClass) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances[balanceKey{account: account, class: class}], nil
}

func (s *Storage) Append(ctx context.Context, event domain.Event, mints []domain.Mint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seqs[event.Seq]; ok {
		return fmt.Errorf("seq %d: %w", event.Seq, storage.ErrDuplicateEvent)
	}
	s.seqs[event.Seq] = struct{}{}
	s.events = append(s.events, event)
	for _, m := range mints {
		s.balances[balanceKey{account: m.Account, class: m.Class}] += m.Amount
	}
	return nil
}

func (s *Storage) List(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]domain.Event, len(s.events))
	copy(events, s.events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Seq < events[j].Seq
	})
	return events, nil
}
