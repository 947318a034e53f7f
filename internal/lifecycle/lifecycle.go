// Package lifecycle drives the forward-only hackathon timeline:
// registration, hacking, voting, finished.
package lifecycle

import (
	"github.com/goserg/hackathon/internal/access"
	"github.com/goserg/hackathon/internal/domain"
)

type Machine struct {
	acl        *access.Registry
	phase      domain.Phase
	minMembers int
}

func New(acl *access.Registry, minMembers int) *Machine {
	if minMembers <= 0 {
		minMembers = domain.DefaultMinMembersPerTeam
	}
	return &Machine{
		acl:        acl,
		phase:      domain.PhaseRegistration,
		minMembers: minMembers,
	}
}

func (m *Machine) Phase() domain.Phase {
	return m.phase
}

func (m *Machine) MinMembersPerTeam() int {
	return m.minMembers
}

// Require fails with the phase error naming want when the machine is
// anywhere else.
func (m *Machine) Require(want domain.Phase) error {
	if m.phase == want {
		return nil
	}
	return phaseError(want)
}

func phaseError(p domain.Phase) error {
	switch p {
	case domain.PhaseRegistration:
		return domain.ErrNotInRegistration
	case domain.PhaseHacking:
		return domain.ErrNotInHacking
	case domain.PhaseVoting:
		return domain.ErrNotInVoting
	}
	return domain.ErrNotInVoting
}

// ToHacking closes registration. onEnter runs after every check passed and
// before the phase moves; its error aborts the transition.
func (m *Machine) ToHacking(caller domain.Account, teams []domain.Team, onEnter func() error) error {
	if err := m.acl.Require(domain.RoleAdmin, caller); err != nil {
		return err
	}
	if err := m.Require(domain.PhaseRegistration); err != nil {
		return err
	}
	if len(teams) < domain.MinTeams {
		return domain.ErrNotEnoughTeams
	}
	for _, t := range teams {
		if t.Size() < m.minMembers {
			return domain.ErrTeamBelowMinimum
		}
	}
	return m.advance(domain.PhaseHacking, onEnter)
}

func (m *Machine) ToVoting(caller domain.Account, onEnter func() error) error {
	if err := m.acl.Require(domain.RoleAdmin, caller); err != nil {
		return err
	}
	if err := m.Require(domain.PhaseHacking); err != nil {
		return err
	}
	return m.advance(domain.PhaseVoting, onEnter)
}

func (m *Machine) ToFinished(caller domain.Account, onEnter func() error) error {
	if err := m.acl.Require(domain.RoleAdmin, caller); err != nil {
		return err
	}
	if err := m.Require(domain.PhaseVoting); err != nil {
		return err
	}
	return m.advance(domain.PhaseFinished, onEnter)
}

func (m *Machine) advance(next domain.Phase, onEnter func() error) error {
	if onEnter != nil {
		if err := onEnter(); err != nil {
			return err
		}
	}
	m.phase = next
	return nil
}
