package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goserg/hackathon/internal/commitment"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/storage/mem"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	deployer = domain.Account("deployer")
	juror    = domain.Account("juror")
)

var (
	teamA = []domain.Account{"a1", "a2", "a3"}
	teamB = []domain.Account{"b1", "b2", "b3"}
)

type HackathonSuite struct {
	suite.Suite
	ctx   context.Context
	store *mem.Storage
	log   *logrus.Logger
	hook  *logtest.Hook
	h     *Hackathon
}

func TestHackathonSuite(t *testing.T) {
	suite.Run(t, new(HackathonSuite))
}

func (s *HackathonSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = mem.New()
	s.log, s.hook = logtest.NewNullLogger()
	s.log.SetLevel(logrus.DebugLevel)
	s.h = s.newHackathon()
}

func (s *HackathonSuite) newHackathon() *Hackathon {
	h, err := New(s.ctx, Config{SuperAdmin: deployer}, s.store, s.store, s.log)
	s.Require().NoError(err)
	return h
}

func secretOf(a domain.Account) string {
	return "secret-" + a.String()
}

// formTeams registers both teams in full and returns their ids.
func (s *HackathonSuite) formTeams() (domain.TeamID, domain.TeamID) {
	var hashes []domain.Commitment
	for _, a := range append(append([]domain.Account{}, teamA...), teamB...) {
		hashes = append(hashes, commitment.Hash(secretOf(a)))
	}
	added, err := s.h.AddRegistrationTokens(s.ctx, deployer, hashes)
	s.Require().NoError(err)
	s.Require().Equal(len(hashes), added)

	ids := make([]domain.TeamID, 0, 2)
	for i, members := range [][]domain.Account{teamA, teamB} {
		for _, a := range members {
			s.Require().NoError(s.h.JoinHackathon(s.ctx, a, secretOf(a)))
		}
		t, err := s.h.CreateTeam(s.ctx, members[0], fmt.Sprintf("team %d", i))
		s.Require().NoError(err)
		for _, a := range members[1:] {
			_, err := s.h.JoinTeam(s.ctx, a, t.ID)
			s.Require().NoError(err)
		}
		ids = append(ids, t.ID)
	}
	return ids[0], ids[1]
}

func (s *HackathonSuite) balance(a domain.Account, class domain.TokenClass) uint64 {
	b, err := s.h.BalanceOf(s.ctx, a, class)
	s.Require().NoError(err)
	return b
}

func (s *HackathonSuite) TestFullRun() {
	idA, idB := s.formTeams()
	s.Equal(domain.TeamID(1), idA)
	s.Equal(domain.TeamID(2), idB)
	s.Require().NoError(s.h.AssignJuror(s.ctx, deployer, juror, []domain.CategoryID{1, 2}, []uint64{3, 3}))

	foo, err := s.h.CreatePrizeCategory(s.ctx, deployer, "foo")
	s.Require().NoError(err)
	s.Equal(domain.TokenClass(3), foo.WinnerTokenClass)

	s.Require().NoError(s.h.SetPhaseToHacking(s.ctx, deployer))
	for _, a := range teamA {
		s.Equal(uint64(1), s.balance(a, idA.Class()))
		s.Zero(s.balance(a, idB.Class()))
	}
	for _, a := range teamB {
		s.Equal(uint64(1), s.balance(a, idB.Class()))
	}

	s.Require().NoError(s.h.SetPhaseToVoting(s.ctx, deployer))

	tally, err := s.h.Vote(s.ctx, juror, idB, "foo")
	s.Require().NoError(err)
	s.Equal(uint64(1), tally)
	winner, _, err := s.h.Winner("foo")
	s.Require().NoError(err)
	s.Equal(idB, winner)

	_, err = s.h.Vote(s.ctx, juror, idA, "foo")
	s.Require().NoError(err)
	_, _, err = s.h.Winner("foo")
	s.ErrorIs(err, domain.ErrDraw)

	tally, err = s.h.Vote(s.ctx, juror, idA, "foo")
	s.Require().NoError(err)
	s.Equal(uint64(2), tally)
	winner, votes, err := s.h.Winner("foo")
	s.Require().NoError(err)
	s.Equal(idA, winner)
	s.Equal(uint64(2), votes)

	s.Require().NoError(s.h.SetPhaseToFinished(s.ctx, deployer))
	s.Equal(domain.PhaseFinished, s.h.Phase())
	for _, a := range teamA {
		s.Equal(uint64(1), s.balance(a, foo.WinnerTokenClass))
	}
	for _, a := range teamB {
		s.Zero(s.balance(a, foo.WinnerTokenClass))
	}

	events, err := s.h.Events(s.ctx)
	s.Require().NoError(err)
	last := events[len(events)-1]
	s.Equal(domain.EventPhaseChanged, last.Kind)
	s.Equal("finished", last.Details["phase"])
	s.Equal("foo=1", last.Details["winners"])
	for i, e := range events {
		s.Equal(uint64(i+1), e.Seq)
	}
}

func (s *HackathonSuite) TestFinishWithDrawKeepsVoting() {
	idA, idB := s.formTeams()
	s.Require().NoError(s.h.AssignJuror(s.ctx, deployer, juror, nil, nil))
	_, err := s.h.CreatePrizeCategory(s.ctx, deployer, "foo")
	s.Require().NoError(err)
	s.Require().NoError(s.h.SetPhaseToHacking(s.ctx, deployer))
	s.Require().NoError(s.h.SetPhaseToVoting(s.ctx, deployer))

	_, err = s.h.Vote(s.ctx, juror, idA, "foo")
	s.Require().NoError(err)
	_, err = s.h.Vote(s.ctx, juror, idB, "foo")
	s.Require().NoError(err)

	err = s.h.SetPhaseToFinished(s.ctx, deployer)
	s.ErrorIs(err, domain.ErrDraw)
	s.Equal(domain.PhaseVoting, s.h.Phase())

	_, err = s.h.Vote(s.ctx, juror, idB, "foo")
	s.Require().NoError(err)
	s.Require().NoError(s.h.SetPhaseToFinished(s.ctx, deployer))
	s.Equal(uint64(1), s.balance("b1", domain.TokenClass(3)))
}

func (s *HackathonSuite) TestRegistrationClosesAfterHacking() {
	s.formTeams()
	s.Require().NoError(s.h.SetPhaseToHacking(s.ctx, deployer))

	_, err := s.h.AddRegistrationTokens(s.ctx, deployer, []domain.Commitment{commitment.Hash("late")})
	s.ErrorIs(err, domain.ErrNotInRegistration)
	_, err = s.h.CreateTeam(s.ctx, "a1", "late")
	s.ErrorIs(err, domain.ErrNotInRegistration)
}

func (s *HackathonSuite) TestConsumedCommitmentStaysConsumed() {
	h := commitment.Hash("secret")
	_, err := s.h.AddRegistrationTokens(s.ctx, deployer, []domain.Commitment{h})
	s.Require().NoError(err)
	s.Require().NoError(s.h.JoinHackathon(s.ctx, "alice", "secret"))

	added, err := s.h.AddRegistrationTokens(s.ctx, deployer, []domain.Commitment{h})
	s.Require().NoError(err)
	s.Zero(added)
	s.ErrorIs(s.h.JoinHackathon(s.ctx, "bob", "secret"), domain.ErrTokenUsed)

	holder, ok := s.h.RegistrationStatus(h)
	s.True(ok)
	s.Equal(domain.Account("alice"), holder)
}

func (s *HackathonSuite) TestRejectedOperationIsNotJournaled() {
	_, err := s.h.CreateTeam(s.ctx, "stranger", "team")
	s.ErrorIs(err, domain.ErrUnauthorized)

	events, err := s.h.Events(s.ctx)
	s.Require().NoError(err)
	s.Empty(events)
	s.Equal(logrus.DebugLevel, s.hook.LastEntry().Level)
	s.Equal("operation rejected", s.hook.LastEntry().Message)
}

func (s *HackathonSuite) TestReplayRestoresState() {
	idA, _ := s.formTeams()
	s.Require().NoError(s.h.AssignJuror(s.ctx, deployer, juror, []domain.CategoryID{1}, []uint64{2}))
	_, err := s.h.CreatePrizeCategory(s.ctx, deployer, "foo")
	s.Require().NoError(err)
	s.Require().NoError(s.h.SetPhaseToHacking(s.ctx, deployer))
	s.Require().NoError(s.h.SetPhaseToVoting(s.ctx, deployer))
	_, err = s.h.Vote(s.ctx, juror, idA, "foo")
	s.Require().NoError(err)

	restored := s.newHackathon()
	s.Equal(domain.PhaseVoting, restored.Phase())
	s.Equal(s.h.Teams(), restored.Teams())
	s.Equal(s.h.PrizeCategories(), restored.PrizeCategories())
	s.Equal(s.h.Allocations(juror), restored.Allocations(juror))
	s.Equal(s.h.NextTeamID(), restored.NextTeamID())
	s.True(restored.HasRole(domain.RoleParticipant, "b3"))

	// Replay must not mint membership badges a second time.
	s.Equal(uint64(1), s.balance("a1", idA.Class()))

	tally, err := restored.Vote(s.ctx, juror, idA, "foo")
	s.Require().NoError(err)
	s.Equal(uint64(2), tally)
	events, err := restored.Events(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(len(events)), events[len(events)-1].Seq)
}

func (s *HackathonSuite) TestRoles() {
	s.Equal([]domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin}, s.h.Roles(deployer))

	s.Require().NoError(s.h.GrantAdmin(s.ctx, deployer, "carol"))
	s.True(s.h.HasRole(domain.RoleAdmin, "carol"))
	s.ErrorIs(s.h.GrantAdmin(s.ctx, "carol", "dave"), domain.ErrUnauthorized)
	s.Require().NoError(s.h.RevokeAdmin(s.ctx, deployer, "carol"))
	s.False(s.h.HasRole(domain.RoleAdmin, "carol"))

	s.Require().NoError(s.h.AssignJuror(s.ctx, deployer, juror, []domain.CategoryID{1, 2}, []uint64{3, 3}))
	s.Equal([]domain.Role{domain.RoleJuror}, s.h.Roles(juror))
	s.Require().NoError(s.h.RevokeJuror(s.ctx, deployer, juror))
	s.Empty(s.h.Roles(juror))
}

func TestNewRequiresSuperAdmin(t *testing.T) {
	store := mem.New()
	log, _ := logtest.NewNullLogger()
	_, err := New(context.Background(), Config{}, store, store, log)
	assert.ErrorIs(t, err, ErrNoSuperAdmin)
}

// flakyJournal refuses events of one kind until it is healed.
type flakyJournal struct {
	*mem.Storage
	refuse domain.EventKind
}

var errJournalDown = errors.New("journal down")

func (j *flakyJournal) Append(ctx context.Context, e domain.Event, mints []domain.Mint) error {
	if e.Kind == j.refuse {
		return errJournalDown
	}
	return j.Storage.Append(ctx, e, mints)
}

func newFlaky(t *testing.T, refuse domain.EventKind) (*Hackathon, *flakyJournal, *logtest.Hook) {
	t.Helper()
	journal := &flakyJournal{Storage: mem.New(), refuse: refuse}
	log, hook := logtest.NewNullLogger()
	h, err := New(context.Background(), Config{SuperAdmin: deployer, MinMembersPerTeam: 1}, journal, journal, log)
	require.NoError(t, err)
	return h, journal, hook
}

func joinWithTeam(t *testing.T, h *Hackathon, a domain.Account) domain.Team {
	t.Helper()
	ctx := context.Background()
	_, err := h.AddRegistrationTokens(ctx, deployer, []domain.Commitment{commitment.Hash(secretOf(a))})
	require.NoError(t, err)
	require.NoError(t, h.JoinHackathon(ctx, a, secretOf(a)))
	team, err := h.CreateTeam(ctx, a, a.String())
	require.NoError(t, err)
	return team
}

func TestUnjournaledPhaseChangeIsRolledBack(t *testing.T) {
	ctx := context.Background()
	h, journal, hook := newFlaky(t, domain.EventPhaseChanged)
	first := joinWithTeam(t, h, "a1")
	joinWithTeam(t, h, "b1")

	assert.ErrorIs(t, h.SetPhaseToHacking(ctx, deployer), errJournalDown)
	assert.Equal(t, domain.PhaseRegistration, h.Phase())
	balance, err := h.BalanceOf(ctx, "a1", first.ID.Class())
	require.NoError(t, err)
	assert.Zero(t, balance)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "unable to append to journal", hook.LastEntry().Message)

	journal.refuse = ""
	require.NoError(t, h.SetPhaseToHacking(ctx, deployer))
	balance, err = h.BalanceOf(ctx, "a1", first.ID.Class())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	log, _ := logtest.NewNullLogger()
	restored, err := New(ctx, Config{SuperAdmin: deployer, MinMembersPerTeam: 1}, journal, journal, log)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseHacking, restored.Phase())
	assert.ErrorIs(t, restored.SetPhaseToHacking(ctx, deployer), domain.ErrNotInRegistration)
	balance, err = restored.BalanceOf(ctx, "a1", first.ID.Class())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	events, err := restored.Events(ctx)
	require.NoError(t, err)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
}

func TestUnjournaledTeamIsRolledBack(t *testing.T) {
	ctx := context.Background()
	h, journal, _ := newFlaky(t, domain.EventTeamCreated)
	_, err := h.AddRegistrationTokens(ctx, deployer, []domain.Commitment{
		commitment.Hash(secretOf("a1")),
		commitment.Hash(secretOf("a2")),
	})
	require.NoError(t, err)
	require.NoError(t, h.JoinHackathon(ctx, "a1", secretOf("a1")))
	require.NoError(t, h.JoinHackathon(ctx, "a2", secretOf("a2")))

	_, err = h.CreateTeam(ctx, "a1", "lost")
	assert.ErrorIs(t, err, errJournalDown)
	_, owns := h.TeamOwnedBy("a1")
	assert.False(t, owns)
	assert.Empty(t, h.Teams())
	assert.Equal(t, domain.TeamID(1), h.NextTeamID())
	assert.True(t, h.HasRole(domain.RoleParticipant, "a2"))
	_, err = h.JoinTeam(ctx, "a2", 1)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)

	journal.refuse = ""
	team, err := h.CreateTeam(ctx, "a1", "kept")
	require.NoError(t, err)
	assert.Equal(t, domain.TeamID(1), team.ID)
	_, err = h.JoinTeam(ctx, "a2", team.ID)
	require.NoError(t, err)

	log, _ := logtest.NewNullLogger()
	restored, err := New(ctx, Config{SuperAdmin: deployer, MinMembersPerTeam: 1}, journal, journal, log)
	require.NoError(t, err)
	assert.Equal(t, h.Teams(), restored.Teams())
}
