// Package access keeps role memberships and enforces who may hand them out.
//
// The superadmin is fixed when the registry is created and is the only
// account allowed to grant or revoke admin. Admins grant juror. Participant
// is only reachable through registration redemption.
package access

import (
	"sort"

	"github.com/goserg/hackathon/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
)

type Registry struct {
	superAdmin  domain.Account
	members     map[domain.Role]mapset.Set[domain.Account]
	allocations map[domain.Account]map[domain.CategoryID]uint64
}

// New creates a registry owned by superAdmin. The deployer also receives
// admin so it can run the event on its own.
func New(superAdmin domain.Account) *Registry {
	r := &Registry{
		superAdmin: superAdmin,
		members: map[domain.Role]mapset.Set[domain.Account]{
			domain.RoleAdmin:       mapset.NewSet[domain.Account](),
			domain.RoleJuror:       mapset.NewSet[domain.Account](),
			domain.RoleParticipant: mapset.NewSet[domain.Account](),
		},
		allocations: make(map[domain.Account]map[domain.CategoryID]uint64),
	}
	r.members[domain.RoleAdmin].Add(superAdmin)
	return r
}

func (r *Registry) HasRole(role domain.Role, account domain.Account) bool {
	if role == domain.RoleSuperAdmin {
		return account == r.superAdmin
	}
	set, ok := r.members[role]
	if !ok {
		return false
	}
	return set.Contains(account)
}

// Require returns a *domain.MissingRoleError when account lacks role.
func (r *Registry) Require(role domain.Role, account domain.Account) error {
	if r.HasRole(role, account) {
		return nil
	}
	return &domain.MissingRoleError{Account: account, Role: role}
}

func (r *Registry) Roles(account domain.Account) mapset.Set[domain.Role] {
	roles := mapset.NewSet[domain.Role]()
	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleJuror, domain.RoleParticipant} {
		if r.HasRole(role, account) {
			roles.Add(role)
		}
	}
	return roles
}

// Members lists the holders of role sorted by account.
func (r *Registry) Members(role domain.Role) []domain.Account {
	if role == domain.RoleSuperAdmin {
		return []domain.Account{r.superAdmin}
	}
	set, ok := r.members[role]
	if !ok {
		return nil
	}
	accounts := set.ToSlice()
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i] < accounts[j]
	})
	return accounts
}

func (r *Registry) GrantAdmin(caller, account domain.Account) error {
	if err := r.Require(domain.RoleSuperAdmin, caller); err != nil {
		return err
	}
	r.members[domain.RoleAdmin].Add(account)
	return nil
}

func (r *Registry) RevokeAdmin(caller, account domain.Account) error {
	if err := r.Require(domain.RoleSuperAdmin, caller); err != nil {
		return err
	}
	r.members[domain.RoleAdmin].Remove(account)
	return nil
}

// GrantJuror makes account a juror and records its vote weight for every
// listed category. Weights are bookkeeping only; voting does not spend them.
func (r *Registry) GrantJuror(caller, account domain.Account, categories []domain.CategoryID, weights []uint64) error {
	if err := r.Require(domain.RoleAdmin, caller); err != nil {
		return err
	}
	if len(categories) != len(weights) {
		return domain.ErrAllocationMismatch
	}
	r.members[domain.RoleJuror].Add(account)
	if len(categories) == 0 {
		return nil
	}
	alloc, ok := r.allocations[account]
	if !ok {
		alloc = make(map[domain.CategoryID]uint64, len(categories))
		r.allocations[account] = alloc
	}
	for i, category := range categories {
		alloc[category] = weights[i]
	}
	return nil
}

// RevokeJuror drops the juror role. Recorded allocations stay so the
// history of what the juror was entitled to is not lost.
func (r *Registry) RevokeJuror(caller, account domain.Account) error {
	if err := r.Require(domain.RoleAdmin, caller); err != nil {
		return err
	}
	r.members[domain.RoleJuror].Remove(account)
	return nil
}

// GrantParticipant is called by the registration ledger once a commitment
// is redeemed. It performs no authorization of its own.
func (r *Registry) GrantParticipant(account domain.Account) {
	r.members[domain.RoleParticipant].Add(account)
}

func (r *Registry) Allocations(juror domain.Account) []domain.JurorAllocation {
	alloc := r.allocations[juror]
	res := make([]domain.JurorAllocation, 0, len(alloc))
	for category, weight := range alloc {
		res = append(res, domain.JurorAllocation{
			Juror:    juror,
			Category: category,
			Weight:   weight,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Category < res[j].Category
	})
	return res
}
