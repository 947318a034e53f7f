// Package registration turns one-time secret commitments into the
// participant role.
package registration

import (
	"github.com/goserg/hackathon/internal/access"
	"github.com/goserg/hackathon/internal/commitment"
	"github.com/goserg/hackathon/internal/domain"
)

type PhaseGuard interface {
	Require(domain.Phase) error
}

type Ledger struct {
	acl         *access.Registry
	phase       PhaseGuard
	commitments map[domain.Commitment]domain.Account
}

func New(acl *access.Registry, phase PhaseGuard) *Ledger {
	return &Ledger{
		acl:         acl,
		phase:       phase,
		commitments: make(map[domain.Commitment]domain.Account),
	}
}

// Register marks every hash unclaimed and reports how many were new. Known
// hashes, consumed or not, are left untouched.
func (l *Ledger) Register(caller domain.Account, hashes []domain.Commitment) (int, error) {
	if err := l.acl.Require(domain.RoleAdmin, caller); err != nil {
		return 0, err
	}
	if err := l.phase.Require(domain.PhaseRegistration); err != nil {
		return 0, err
	}
	added := 0
	for _, h := range hashes {
		if _, ok := l.commitments[h]; ok {
			continue
		}
		l.commitments[h] = domain.UnclaimedAccount
		added++
	}
	return added, nil
}

// Redeem consumes the commitment of secret for caller and grants it the
// participant role.
func (l *Ledger) Redeem(caller domain.Account, secret string) (domain.Commitment, error) {
	h := commitment.Hash(secret)
	if holder, ok := l.commitments[h]; !ok || holder != domain.UnclaimedAccount {
		return h, domain.ErrTokenUsed
	}
	if l.acl.HasRole(domain.RoleParticipant, caller) {
		return h, domain.ErrAlreadyRegistered
	}
	l.commitments[h] = caller
	l.acl.GrantParticipant(caller)
	return h, nil
}

// Status returns the holder of h: domain.UnclaimedAccount while unclaimed,
// the redeeming account once consumed. ok is false for unknown hashes.
func (l *Ledger) Status(h domain.Commitment) (holder domain.Account, ok bool) {
	holder, ok = l.commitments[h]
	return holder, ok
}
