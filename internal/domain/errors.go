package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindPhase
	KindUniqueness
	KindCapacity
	KindRule
	KindNotFound
	KindInvalid
)

// Error is a domain failure with a stable, human readable message.
type Error struct {
	kind Kind
	msg  string
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

var (
	ErrUnauthorized = newError(KindUnauthorized, "unauthorized")

	ErrNotInRegistration = newError(KindPhase, "the hackathon is not in registration mode")
	ErrNotInHacking      = newError(KindPhase, "the hackathon is not in hacking mode")
	ErrNotInVoting       = newError(KindPhase, "the hackathon is not in voting mode")

	ErrAlreadyCreatedTeam = newError(KindUniqueness, "already created a team")
	ErrAlreadyJoinedTeam  = newError(KindUniqueness, "already joined a team")
	ErrTokenUsed          = newError(KindUniqueness, "this registration token has already been used")
	ErrAlreadyRegistered  = newError(KindUniqueness, "this address already joined the hackathon")
	ErrPrizeExists        = newError(KindUniqueness, "there's already a prize with the name")

	ErrNotEnoughTeams   = newError(KindCapacity, fmt.Sprintf("there need to be at least %d teams", MinTeams))
	ErrTeamBelowMinimum = newError(KindCapacity, "every team needs the minimum amount of members")
	ErrTeamFull         = newError(KindCapacity, "this team already has the maximum amount of members")

	ErrOwnTeamVote = newError(KindRule, "you can't vote for your own team")
	ErrDraw        = newError(KindRule, "a draw is not allowed, keep on voting!")
	ErrNoVotes     = newError(KindRule, "no votes have been cast for the prize")

	ErrTeamNotFound  = newError(KindNotFound, "there's no team with the id")
	ErrPrizeNotFound = newError(KindNotFound, "there's no prize with the name")

	ErrRoleNotGrantable   = newError(KindInvalid, "role can not be granted directly")
	ErrAllocationMismatch = newError(KindInvalid, "every category needs exactly one weight")
	ErrEmptyName          = newError(KindInvalid, "name must not be empty")
)

// MissingRoleError reports the exact role an account lacks.
type MissingRoleError struct {
	Account Account
	Role    Role
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("account %s is missing role %s", e.Account, e.Role)
}

func (e *MissingRoleError) Is(target error) bool {
	return target == error(ErrUnauthorized)
}

func KindOf(err error) Kind {
	var missing *MissingRoleError
	if errors.As(err, &missing) {
		return KindUnauthorized
	}
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindUnknown
}
