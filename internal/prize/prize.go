// Package prize keeps prize categories, juror ballots and winner
// resolution.
//
// A category winner is the team with the strictly highest tally. Ties are
// never broken here: resolving a tied category fails until more votes come
// in.
package prize

import (
	"fmt"
	"sort"

	"github.com/goserg/hackathon/internal/access"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/normalize"
)

type Teams interface {
	MemberOf(domain.Account) (domain.Team, bool)
	Get(domain.TeamID) (domain.Team, error)
}

type Engine struct {
	acl     *access.Registry
	teams   Teams
	classes *domain.ClassCounter

	categories map[string]*domain.PrizeCategory
	order      []string
	nextID     domain.CategoryID
}

func New(acl *access.Registry, teams Teams, classes *domain.ClassCounter) *Engine {
	return &Engine{
		acl:        acl,
		teams:      teams,
		classes:    classes,
		categories: make(map[string]*domain.PrizeCategory),
		nextID:     1,
	}
}

func (e *Engine) CreateCategory(caller domain.Account, name string) (domain.PrizeCategory, error) {
	if err := e.acl.Require(domain.RoleAdmin, caller); err != nil {
		return domain.PrizeCategory{}, err
	}
	key := normalize.Name(name)
	if key == "" {
		return domain.PrizeCategory{}, domain.ErrEmptyName
	}
	if _, ok := e.categories[key]; ok {
		return domain.PrizeCategory{}, fmt.Errorf("%w %s", domain.ErrPrizeExists, key)
	}
	c := &domain.PrizeCategory{
		ID:               e.nextID,
		Name:             key,
		WinnerTokenClass: e.classes.Next(),
		Votes:            make(map[domain.TeamID]uint64),
	}
	e.nextID++
	e.categories[key] = c
	e.order = append(e.order, key)
	return copyCategory(c), nil
}

// Vote adds one vote for teamID in the named category and returns the new
// tally of that team. Juror allocations are not consulted.
func (e *Engine) Vote(caller domain.Account, teamID domain.TeamID, name string) (uint64, error) {
	if err := e.acl.Require(domain.RoleJuror, caller); err != nil {
		return 0, err
	}
	if own, ok := e.teams.MemberOf(caller); ok && own.ID == teamID {
		return 0, domain.ErrOwnTeamVote
	}
	c, err := e.lookup(name)
	if err != nil {
		return 0, err
	}
	if _, err := e.teams.Get(teamID); err != nil {
		return 0, err
	}
	c.Votes[teamID]++
	return c.Votes[teamID], nil
}

// Winner returns the team with the strictly highest tally in the category.
func (e *Engine) Winner(name string) (domain.TeamID, uint64, error) {
	c, err := e.lookup(name)
	if err != nil {
		return 0, 0, err
	}
	return winner(c)
}

func winner(c *domain.PrizeCategory) (domain.TeamID, uint64, error) {
	var (
		best  domain.TeamID
		top   uint64
		ties  int
		found bool
	)
	for _, id := range sortedTeams(c.Votes) {
		votes := c.Votes[id]
		switch {
		case !found || votes > top:
			best, top, ties, found = id, votes, 1, true
		case votes == top:
			ties++
		}
	}
	if !found || top == 0 {
		return 0, 0, fmt.Errorf("%w %s", domain.ErrNoVotes, c.Name)
	}
	if ties > 1 {
		return 0, 0, domain.ErrDraw
	}
	return best, top, nil
}

// Awards resolves every category that received votes. Any tied category
// fails the whole resolution.
func (e *Engine) Awards() ([]domain.Award, error) {
	var awards []domain.Award
	for _, key := range e.order {
		c := e.categories[key]
		if len(c.Votes) == 0 {
			continue
		}
		id, votes, err := winner(c)
		if err != nil {
			return nil, fmt.Errorf("prize %s: %w", c.Name, err)
		}
		t, err := e.teams.Get(id)
		if err != nil {
			return nil, err
		}
		awards = append(awards, domain.Award{
			Category: copyCategory(c),
			Team:     t,
			Votes:    votes,
		})
	}
	return awards, nil
}

func (e *Engine) Tally(name string) (map[domain.TeamID]uint64, error) {
	c, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	return copyCategory(c).Votes, nil
}

func (e *Engine) Category(name string) (domain.PrizeCategory, error) {
	c, err := e.lookup(name)
	if err != nil {
		return domain.PrizeCategory{}, err
	}
	return copyCategory(c), nil
}

func (e *Engine) Categories() []domain.PrizeCategory {
	res := make([]domain.PrizeCategory, 0, len(e.order))
	for _, key := range e.order {
		res = append(res, copyCategory(e.categories[key]))
	}
	return res
}

func (e *Engine) lookup(name string) (*domain.PrizeCategory, error) {
	key := normalize.Name(name)
	c, ok := e.categories[key]
	if !ok {
		return nil, fmt.Errorf("%w %s", domain.ErrPrizeNotFound, key)
	}
	return c, nil
}

func sortedTeams(votes map[domain.TeamID]uint64) []domain.TeamID {
	ids := make([]domain.TeamID, 0, len(votes))
	for id := range votes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

func copyCategory(c *domain.PrizeCategory) domain.PrizeCategory {
	cp := *c
	cp.Votes = make(map[domain.TeamID]uint64, len(c.Votes))
	for id, v := range c.Votes {
		cp.Votes[id] = v
	}
	return cp
}
