package domain

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Account string

func (a Account) String() string {
	return string(a)
}

// UnclaimedAccount marks a registered commitment nobody redeemed yet.
// It is never a real participant.
const UnclaimedAccount Account = "0x0000000000000000000000000000000000000001"

type Role int

const (
	RoleSuperAdmin Role = iota + 1
	RoleAdmin
	RoleJuror
	RoleParticipant
)

var roleNames = map[Role]string{
	RoleSuperAdmin:  "superadmin",
	RoleAdmin:       "admin",
	RoleJuror:       "juror",
	RoleParticipant: "participant",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if strings.EqualFold(s, name) {
			return role, nil
		}
	}
	return 0, errors.New("unknown role " + s)
}

type Phase int

const (
	PhaseRegistration Phase = iota
	PhaseHacking
	PhaseVoting
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRegistration:
		return "registration"
	case PhaseHacking:
		return "hacking"
	case PhaseVoting:
		return "voting"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

const (
	MaxMembersPerTeam        = 4
	DefaultMinMembersPerTeam = 2
	MinTeams                 = 2
)

// TokenClass identifies a badge kind on the token ledger.
type TokenClass uint64

// FirstTokenClass is the value the class counter starts from.
const FirstTokenClass TokenClass = 1

type TeamID uint64

func (id TeamID) Class() TokenClass {
	return TokenClass(id)
}

type Team struct {
	ID      TeamID
	Name    string
	Owner   Account
	Members []Account
}

func (t Team) Size() int {
	return len(t.Members)
}

func (t Team) HasMember(a Account) bool {
	for _, m := range t.Members {
		if m == a {
			return true
		}
	}
	return false
}

// Commitment is the Keccak-256 digest of a registration secret.
type Commitment [32]byte

func (c Commitment) String() string {
	return "0x" + hex.EncodeToString(c[:])
}

func ParseCommitment(s string) (Commitment, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Commitment{}, err
	}
	var c Commitment
	if len(b) != len(c) {
		return Commitment{}, errors.New("commitment must be 32 bytes long")
	}
	copy(c[:], b)
	return c, nil
}

type CategoryID uint64

type PrizeCategory struct {
	ID               CategoryID
	Name             string
	WinnerTokenClass TokenClass
	Votes            map[TeamID]uint64
}

type JurorAllocation struct {
	Juror    Account
	Category CategoryID
	Weight   uint64
}

type Award struct {
	Category PrizeCategory
	Team     Team
	Votes    uint64
}

type Mint struct {
	Account Account
	Class   TokenClass
	Amount  uint64
}

type EventKind string

const (
	EventRoleGranted           EventKind = "role_granted"
	EventRoleRevoked           EventKind = "role_revoked"
	EventCommitmentsRegistered EventKind = "commitments_registered"
	EventRegistrationRedeemed  EventKind = "registration_redeemed"
	EventTeamCreated           EventKind = "team_created"
	EventTeamJoined            EventKind = "team_joined"
	EventPhaseChanged          EventKind = "phase_changed"
	EventPrizeCreated          EventKind = "prize_created"
	EventVoteCast              EventKind = "vote_cast"
)

// Event is one committed operation in the audit journal.
type Event struct {
	ID        uuid.UUID
	Seq       uint64
	Kind      EventKind
	Caller    Account
	Details   map[string]string
	CreatedAt time.Time
}

// ClassCounter hands out token classes for teams and prizes.
type ClassCounter struct {
	next TokenClass
}

func NewClassCounter(base TokenClass) *ClassCounter {
	return &ClassCounter{next: base}
}

func (c *ClassCounter) Peek() TokenClass {
	return c.next
}

func (c *ClassCounter) Next() TokenClass {
	class := c.next
	c.next++
	return class
}
