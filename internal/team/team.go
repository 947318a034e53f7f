package team

import (
	"fmt"

	"github.com/goserg/hackathon/internal/access"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/normalize"
)

type PhaseGuard interface {
	Require(domain.Phase) error
}

// Registry owns every team of the event. Teams are never removed.
type Registry struct {
	acl     *access.Registry
	phase   PhaseGuard
	classes *domain.ClassCounter

	teams    map[domain.TeamID]*domain.Team
	order    []domain.TeamID
	owners   map[domain.Account]domain.TeamID
	memberOf map[domain.Account]domain.TeamID
}

func New(acl *access.Registry, phase PhaseGuard, classes *domain.ClassCounter) *Registry {
	return &Registry{
		acl:      acl,
		phase:    phase,
		classes:  classes,
		teams:    make(map[domain.TeamID]*domain.Team),
		owners:   make(map[domain.Account]domain.TeamID),
		memberOf: make(map[domain.Account]domain.TeamID),
	}
}

// Create registers a team owned by caller, who becomes its first member.
func (r *Registry) Create(caller domain.Account, name string) (domain.Team, error) {
	if err := r.acl.Require(domain.RoleParticipant, caller); err != nil {
		return domain.Team{}, err
	}
	if err := r.phase.Require(domain.PhaseRegistration); err != nil {
		return domain.Team{}, err
	}
	_, owns := r.owners[caller]
	_, belongs := r.memberOf[caller]
	if owns || belongs {
		return domain.Team{}, fmt.Errorf("account %s %w", caller, domain.ErrAlreadyCreatedTeam)
	}
	name = normalize.Name(name)
	if name == "" {
		return domain.Team{}, domain.ErrEmptyName
	}

	id := domain.TeamID(r.classes.Next())
	t := &domain.Team{
		ID:      id,
		Name:    name,
		Owner:   caller,
		Members: []domain.Account{caller},
	}
	r.teams[id] = t
	r.order = append(r.order, id)
	r.owners[caller] = id
	r.memberOf[caller] = id
	return copyTeam(t), nil
}

func (r *Registry) Join(caller domain.Account, id domain.TeamID) (domain.Team, error) {
	if err := r.acl.Require(domain.RoleParticipant, caller); err != nil {
		return domain.Team{}, err
	}
	if err := r.phase.Require(domain.PhaseRegistration); err != nil {
		return domain.Team{}, err
	}
	if _, ok := r.memberOf[caller]; ok {
		return domain.Team{}, fmt.Errorf("account %s %w", caller, domain.ErrAlreadyJoinedTeam)
	}
	t, ok := r.teams[id]
	if !ok {
		return domain.Team{}, fmt.Errorf("%w %d", domain.ErrTeamNotFound, id)
	}
	if t.Size() >= domain.MaxMembersPerTeam {
		return domain.Team{}, domain.ErrTeamFull
	}
	t.Members = append(t.Members, caller)
	r.memberOf[caller] = id
	return copyTeam(t), nil
}

func (r *Registry) Get(id domain.TeamID) (domain.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return domain.Team{}, fmt.Errorf("%w %d", domain.ErrTeamNotFound, id)
	}
	return copyTeam(t), nil
}

func (r *Registry) OwnedBy(a domain.Account) (domain.Team, bool) {
	id, ok := r.owners[a]
	if !ok {
		return domain.Team{}, false
	}
	return copyTeam(r.teams[id]), true
}

func (r *Registry) MemberOf(a domain.Account) (domain.Team, bool) {
	id, ok := r.memberOf[a]
	if !ok {
		return domain.Team{}, false
	}
	return copyTeam(r.teams[id]), true
}

// All returns the teams in creation order.
func (r *Registry) All() []domain.Team {
	teams := make([]domain.Team, 0, len(r.order))
	for _, id := range r.order {
		teams = append(teams, copyTeam(r.teams[id]))
	}
	return teams
}

func (r *Registry) Count() int {
	return len(r.order)
}

// NextID is the id the next created team would receive, unless a prize
// takes the class first.
func (r *Registry) NextID() domain.TeamID {
	return domain.TeamID(r.classes.Peek())
}

func copyTeam(t *domain.Team) domain.Team {
	c := *t
	c.Members = append([]domain.Account(nil), t.Members...)
	return c
}
