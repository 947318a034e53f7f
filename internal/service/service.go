// Package service runs the hackathon engine as one serialized unit.
//
// Every mutating call is described as a domain.Event and executed against
// the components under a single lock. The event and the badges it mints are
// then written to the journal in one step; if that write fails the
// components are rebuilt from the events committed so far. Replaying the
// journal through the same path rebuilds the state after a restart.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goserg/hackathon/internal/access"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/lifecycle"
	"github.com/goserg/hackathon/internal/prize"
	"github.com/goserg/hackathon/internal/registration"
	"github.com/goserg/hackathon/internal/storage"
	"github.com/goserg/hackathon/internal/team"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Config struct {
	SuperAdmin        domain.Account
	MinMembersPerTeam int
}

var ErrNoSuperAdmin = errors.New("superadmin account must be set")

type Hackathon struct {
	mu  sync.Mutex
	cfg Config

	acl          *access.Registry
	lifecycle    *lifecycle.Machine
	registration *registration.Ledger
	teams        *team.Registry
	prizes       *prize.Engine

	tokens    storage.TokenLedger
	journal   storage.Journal
	committed []domain.Event
	seq       uint64

	log *logrus.Entry
	now func() time.Time
}

// New builds the engine and replays every journaled event into it.
func New(ctx context.Context, cfg Config, tokens storage.TokenLedger, journal storage.Journal, l *logrus.Logger) (*Hackathon, error) {
	if cfg.SuperAdmin == "" {
		return nil, ErrNoSuperAdmin
	}
	h := &Hackathon{
		cfg:     cfg,
		tokens:  tokens,
		journal: journal,
		log:     l.WithField("from", "hackathon"),
		now:     time.Now,
	}
	h.reset()
	events, err := journal.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if err := h.replay(events); err != nil {
		return nil, err
	}
	h.log.WithFields(logrus.Fields{
		"events": len(events),
		"phase":  h.lifecycle.Phase().String(),
	}).Info("hackathon state restored")
	return h, nil
}

// reset replaces every component with an empty one.
func (h *Hackathon) reset() {
	acl := access.New(h.cfg.SuperAdmin)
	machine := lifecycle.New(acl, h.cfg.MinMembersPerTeam)
	classes := domain.NewClassCounter(domain.FirstTokenClass)
	teams := team.New(acl, machine, classes)
	h.acl = acl
	h.lifecycle = machine
	h.registration = registration.New(acl, machine)
	h.teams = teams
	h.prizes = prize.New(acl, teams, classes)
	h.committed = nil
	h.seq = 0
}

// replay executes already committed events. Their badges are in the ledger
// already, so the mints they produce are dropped.
func (h *Hackathon) replay(events []domain.Event) error {
	for _, e := range events {
		details := make(map[string]string, len(e.Details))
		for k, v := range e.Details {
			details[k] = v
		}
		e.Details = details
		if _, err := h.execute(&e); err != nil {
			return fmt.Errorf("replay event %d (%s): %w", e.Seq, e.Kind, err)
		}
		h.committed = append(h.committed, e)
		h.seq = e.Seq
	}
	return nil
}

// rollback drops the effects of an operation the journal did not accept.
func (h *Hackathon) rollback() error {
	events := h.committed
	h.reset()
	return h.replay(events)
}

// run executes one operation and journals it together with its mints. The
// operation only counts as committed once the journal accepted it.
func (h *Hackathon) run(ctx context.Context, caller domain.Account, kind domain.EventKind, details map[string]string) error {
	event := domain.Event{
		Kind:    kind,
		Caller:  caller,
		Details: details,
	}
	log := h.log.WithFields(logrus.Fields{
		"caller": caller,
		"kind":   kind,
	})
	mints, err := h.execute(&event)
	if err != nil {
		log.WithError(err).Debug("operation rejected")
		return err
	}
	event.ID = uuid.New()
	event.Seq = h.seq + 1
	event.CreatedAt = h.now()
	if err := h.journal.Append(ctx, event, mints); err != nil {
		log.WithError(err).WithField("seq", event.Seq).Error("unable to append to journal")
		if rerr := h.rollback(); rerr != nil {
			log.WithError(rerr).Error("unable to roll back")
			return errors.Join(fmt.Errorf("append to journal: %w", err), rerr)
		}
		return fmt.Errorf("append to journal: %w", err)
	}
	h.committed = append(h.committed, event)
	h.seq = event.Seq
	log.WithField("seq", event.Seq).Info("operation committed")
	return nil
}

// execute applies e to the components and returns the badges it mints.
func (h *Hackathon) execute(e *domain.Event) ([]domain.Mint, error) {
	d := e.Details
	switch e.Kind {
	case domain.EventRoleGranted:
		return nil, h.grant(e.Caller, d)
	case domain.EventRoleRevoked:
		return nil, h.revoke(e.Caller, d)
	case domain.EventCommitmentsRegistered:
		hashes, err := parseCommitments(d["hashes"])
		if err != nil {
			return nil, err
		}
		added, err := h.registration.Register(e.Caller, hashes)
		if err != nil {
			return nil, err
		}
		d["added"] = strconv.Itoa(added)
		return nil, nil
	case domain.EventRegistrationRedeemed:
		hash, err := h.registration.Redeem(e.Caller, d["secret"])
		if err != nil {
			return nil, err
		}
		d["hash"] = hash.String()
		return nil, nil
	case domain.EventTeamCreated:
		t, err := h.teams.Create(e.Caller, d["name"])
		if err != nil {
			return nil, err
		}
		d["team"] = formatUint(uint64(t.ID))
		return nil, nil
	case domain.EventTeamJoined:
		id, err := strconv.ParseUint(d["team"], 10, 64)
		if err != nil {
			return nil, err
		}
		_, err = h.teams.Join(e.Caller, domain.TeamID(id))
		return nil, err
	case domain.EventPhaseChanged:
		return h.advance(e.Caller, d)
	case domain.EventPrizeCreated:
		c, err := h.prizes.CreateCategory(e.Caller, d["name"])
		if err != nil {
			return nil, err
		}
		d["category"] = formatUint(uint64(c.ID))
		d["class"] = formatUint(uint64(c.WinnerTokenClass))
		return nil, nil
	case domain.EventVoteCast:
		id, err := strconv.ParseUint(d["team"], 10, 64)
		if err != nil {
			return nil, err
		}
		tally, err := h.prizes.Vote(e.Caller, domain.TeamID(id), d["prize"])
		if err != nil {
			return nil, err
		}
		d["tally"] = formatUint(tally)
		return nil, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", e.Kind)
}

func (h *Hackathon) grant(caller domain.Account, d map[string]string) error {
	role, err := domain.ParseRole(d["role"])
	if err != nil {
		return err
	}
	account := domain.Account(d["account"])
	switch role {
	case domain.RoleAdmin:
		return h.acl.GrantAdmin(caller, account)
	case domain.RoleJuror:
		categories, err := parseUints(d["categories"])
		if err != nil {
			return err
		}
		weights, err := parseUints(d["weights"])
		if err != nil {
			return err
		}
		ids := make([]domain.CategoryID, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, domain.CategoryID(c))
		}
		return h.acl.GrantJuror(caller, account, ids, weights)
	}
	return fmt.Errorf("%s: %w", role, domain.ErrRoleNotGrantable)
}

func (h *Hackathon) revoke(caller domain.Account, d map[string]string) error {
	role, err := domain.ParseRole(d["role"])
	if err != nil {
		return err
	}
	account := domain.Account(d["account"])
	switch role {
	case domain.RoleAdmin:
		return h.acl.RevokeAdmin(caller, account)
	case domain.RoleJuror:
		return h.acl.RevokeJuror(caller, account)
	}
	return fmt.Errorf("%s: %w", role, domain.ErrRoleNotGrantable)
}

// advance moves the lifecycle and returns the badges minted on entering
// the new phase.
func (h *Hackathon) advance(caller domain.Account, d map[string]string) ([]domain.Mint, error) {
	var mints []domain.Mint
	switch d["phase"] {
	case domain.PhaseHacking.String():
		teams := h.teams.All()
		err := h.lifecycle.ToHacking(caller, teams, func() error {
			mints = membershipMints(teams)
			d["badges"] = strconv.Itoa(len(mints))
			return nil
		})
		return mints, err
	case domain.PhaseVoting.String():
		return nil, h.lifecycle.ToVoting(caller, nil)
	case domain.PhaseFinished.String():
		err := h.lifecycle.ToFinished(caller, func() error {
			awards, err := h.prizes.Awards()
			if err != nil {
				return err
			}
			winners := make([]string, 0, len(awards))
			for _, a := range awards {
				winners = append(winners, a.Category.Name+"="+formatUint(uint64(a.Team.ID)))
			}
			d["winners"] = strings.Join(winners, ",")
			mints = prizeMints(awards)
			return nil
		})
		return mints, err
	}
	return nil, fmt.Errorf("unknown phase %q", d["phase"])
}

func membershipMints(teams []domain.Team) []domain.Mint {
	var mints []domain.Mint
	for _, t := range teams {
		for _, member := range t.Members {
			mints = append(mints, domain.Mint{Account: member, Class: t.ID.Class(), Amount: 1})
		}
	}
	return mints
}

func prizeMints(awards []domain.Award) []domain.Mint {
	var mints []domain.Mint
	for _, a := range awards {
		for _, member := range a.Team.Members {
			mints = append(mints, domain.Mint{Account: member, Class: a.Category.WinnerTokenClass, Amount: 1})
		}
	}
	return mints
}

func (h *Hackathon) GrantAdmin(ctx context.Context, caller, account domain.Account) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.run(ctx, caller, domain.EventRoleGranted, map[string]string{
		"role":    domain.RoleAdmin.String(),
		"account": account.String(),
	})
}

func (h *Hackathon) RevokeAdmin(ctx context.Context, caller, account domain.Account) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.run(ctx, caller, domain.EventRoleRevoked, map[string]string{
		"role":    domain.RoleAdmin.String(),
		"account": account.String(),
	})
}

// AssignJuror grants the juror role and records one vote weight per
// category id.
func (h *Hackathon) AssignJuror(ctx context.Context, caller, account domain.Account, categories []domain.CategoryID, weights []uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]uint64, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, uint64(c))
	}
	return h.run(ctx, caller, domain.EventRoleGranted, map[string]string{
		"role":       domain.RoleJuror.String(),
		"account":    account.String(),
		"categories": formatUints(ids),
		"weights":    formatUints(weights),
	})
}

func (h *Hackathon) RevokeJuror(ctx context.Context, caller, account domain.Account) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.run(ctx, caller, domain.EventRoleRevoked, map[string]string{
		"role":    domain.RoleJuror.String(),
		"account": account.String(),
	})
}

// AddRegistrationTokens registers commitments and returns how many of them
// were not known before.
func (h *Hackathon) AddRegistrationTokens(ctx context.Context, caller domain.Account, hashes []domain.Commitment) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	encoded := make([]string, 0, len(hashes))
	for _, c := range hashes {
		encoded = append(encoded, c.String())
	}
	details := map[string]string{"hashes": strings.Join(encoded, ",")}
	if err := h.run(ctx, caller, domain.EventCommitmentsRegistered, details); err != nil {
		return 0, err
	}
	return strconv.Atoi(details["added"])
}

func (h *Hackathon) JoinHackathon(ctx context.Context, caller domain.Account, secret string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.run(ctx, caller, domain.EventRegistrationRedeemed, map[string]string{
		"secret": secret,
	})
}

func (h *Hackathon) CreateTeam(ctx context.Context, caller domain.Account, name string) (domain.Team, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.run(ctx, caller, domain.EventTeamCreated, map[string]string{"name": name}); err != nil {
		return domain.Team{}, err
	}
	t, _ := h.teams.OwnedBy(caller)
	return t, nil
}

func (h *Hackathon) JoinTeam(ctx context.Context, caller domain.Account, id domain.TeamID) (domain.Team, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.run(ctx, caller, domain.EventTeamJoined, map[string]string{"team": formatUint(uint64(id))}); err != nil {
		return domain.Team{}, err
	}
	return h.teams.Get(id)
}

func (h *Hackathon) SetPhaseToHacking(ctx context.Context, caller domain.Account) error {
	return h.setPhase(ctx, caller, domain.PhaseHacking)
}

func (h *Hackathon) SetPhaseToVoting(ctx context.Context, caller domain.Account) error {
	return h.setPhase(ctx, caller, domain.PhaseVoting)
}

// SetPhaseToFinished resolves every prize with votes and mints a prize
// badge to each member of the winning teams. A draw in any prize aborts it.
func (h *Hackathon) SetPhaseToFinished(ctx context.Context, caller domain.Account) error {
	return h.setPhase(ctx, caller, domain.PhaseFinished)
}

func (h *Hackathon) setPhase(ctx context.Context, caller domain.Account, p domain.Phase) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.run(ctx, caller, domain.EventPhaseChanged, map[string]string{
		"from":  h.lifecycle.Phase().String(),
		"phase": p.String(),
	})
}

func (h *Hackathon) CreatePrizeCategory(ctx context.Context, caller domain.Account, name string) (domain.PrizeCategory, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	details := map[string]string{"name": name}
	if err := h.run(ctx, caller, domain.EventPrizeCreated, details); err != nil {
		return domain.PrizeCategory{}, err
	}
	return h.prizes.Category(name)
}

// Vote casts one vote and returns the team's new tally in the category.
func (h *Hackathon) Vote(ctx context.Context, caller domain.Account, id domain.TeamID, category string) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	details := map[string]string{
		"team":  formatUint(uint64(id)),
		"prize": category,
	}
	if err := h.run(ctx, caller, domain.EventVoteCast, details); err != nil {
		return 0, err
	}
	return strconv.ParseUint(details["tally"], 10, 64)
}

func (h *Hackathon) HasRole(role domain.Role, account domain.Account) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.acl.HasRole(role, account)
}

func (h *Hackathon) Roles(account domain.Account) []domain.Role {
	h.mu.Lock()
	defer h.mu.Unlock()
	roles := h.acl.Roles(account).ToSlice()
	sort.Slice(roles, func(i, j int) bool {
		return roles[i] < roles[j]
	})
	return roles
}

// RoleMembers lists the holders of role sorted by account.
func (h *Hackathon) RoleMembers(role domain.Role) []domain.Account {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.acl.Members(role)
}

func (h *Hackathon) Allocations(juror domain.Account) []domain.JurorAllocation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.acl.Allocations(juror)
}

func (h *Hackathon) RegistrationStatus(c domain.Commitment) (domain.Account, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registration.Status(c)
}

func (h *Hackathon) Phase() domain.Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lifecycle.Phase()
}

func (h *Hackathon) MinMembersPerTeam() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lifecycle.MinMembersPerTeam()
}

func (h *Hackathon) Team(id domain.TeamID) (domain.Team, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.teams.Get(id)
}

func (h *Hackathon) Teams() []domain.Team {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.teams.All()
}

func (h *Hackathon) TeamOwnedBy(account domain.Account) (domain.Team, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.teams.OwnedBy(account)
}

func (h *Hackathon) TeamOf(account domain.Account) (domain.Team, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.teams.MemberOf(account)
}

func (h *Hackathon) NextTeamID() domain.TeamID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.teams.NextID()
}

func (h *Hackathon) Winner(category string) (domain.TeamID, uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prizes.Winner(category)
}

func (h *Hackathon) Tally(category string) (map[domain.TeamID]uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prizes.Tally(category)
}

func (h *Hackathon) PrizeCategory(name string) (domain.PrizeCategory, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prizes.Category(name)
}

func (h *Hackathon) PrizeCategories() []domain.PrizeCategory {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prizes.Categories()
}

func (h *Hackathon) BalanceOf(ctx context.Context, account domain.Account, class domain.TokenClass) (uint64, error) {
	return h.tokens.BalanceOf(ctx, account, class)
}

func (h *Hackathon) Events(ctx context.Context) ([]domain.Event, error) {
	return h.journal.List(ctx)
}
