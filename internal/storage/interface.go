package storage

import (
	"context"
	"errors"

	"github.com/goserg/hackathon/internal/domain"
)

var ErrDuplicateEvent = errors.New("event already journaled")

// TokenLedger reports membership and prize badges per account and class.
type TokenLedger interface {
	BalanceOf(ctx context.Context, account domain.Account, class domain.TokenClass) (uint64, error)
}

// Journal is the append-only audit log of committed operations.
type Journal interface {
	// Append stores event together with the badges it mints. Either both
	// are stored or neither is.
	Append(ctx context.Context, event domain.Event, mints []domain.Mint) error
	List(ctx context.Context) ([]domain.Event, error)
}
