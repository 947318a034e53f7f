package access

import (
	"testing"

	"github.com/goserg/hackathon/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner = domain.Account("owner")
	admin = domain.Account("admin")
	guest = domain.Account("guest")
	juror = domain.Account("juror")
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New(owner)
	require.NoError(t, r.GrantAdmin(owner, admin))
	return r
}

func TestNew(t *testing.T) {
	r := New(owner)
	assert.True(t, r.HasRole(domain.RoleSuperAdmin, owner))
	assert.True(t, r.HasRole(domain.RoleAdmin, owner))
	assert.False(t, r.HasRole(domain.RoleJuror, owner))
	assert.False(t, r.HasRole(domain.RoleSuperAdmin, guest))
	assert.Equal(t, []domain.Account{owner}, r.Members(domain.RoleSuperAdmin))
}

func TestGrantAdmin(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.GrantAdmin(owner, guest))
	assert.True(t, r.HasRole(domain.RoleAdmin, guest))
	assert.False(t, r.HasRole(domain.RoleAdmin, "guest2"))
}

func TestAdminCanNotManageAdmins(t *testing.T) {
	r := newRegistry(t)

	err := r.GrantAdmin(admin, guest)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.EqualError(t, err, "account admin is missing role superadmin")
	assert.False(t, r.HasRole(domain.RoleAdmin, guest))

	require.NoError(t, r.GrantAdmin(owner, guest))
	err = r.RevokeAdmin(admin, guest)
	assert.EqualError(t, err, "account admin is missing role superadmin")
	assert.True(t, r.HasRole(domain.RoleAdmin, guest))
}

func TestRevokeAdmin(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.GrantAdmin(owner, guest))
	require.NoError(t, r.RevokeAdmin(owner, guest))
	assert.False(t, r.HasRole(domain.RoleAdmin, guest))
}

func TestGrantJuror(t *testing.T) {
	r := newRegistry(t)

	require.NoError(t, r.GrantJuror(admin, juror, []domain.CategoryID{1, 2}, []uint64{3, 3}))
	assert.True(t, r.HasRole(domain.RoleJuror, juror))
	assert.False(t, r.HasRole(domain.RoleJuror, guest))

	assert.Equal(t, []domain.JurorAllocation{
		{Juror: juror, Category: 1, Weight: 3},
		{Juror: juror, Category: 2, Weight: 3},
	}, r.Allocations(juror))
}

func TestGrantJurorErrors(t *testing.T) {
	r := newRegistry(t)

	err := r.GrantJuror(guest, "guest2", []domain.CategoryID{1, 2}, []uint64{3, 3})
	assert.EqualError(t, err, "account guest is missing role admin")
	assert.False(t, r.HasRole(domain.RoleJuror, "guest2"))

	err = r.GrantJuror(admin, juror, []domain.CategoryID{1, 2}, []uint64{3})
	assert.ErrorIs(t, err, domain.ErrAllocationMismatch)
	assert.False(t, r.HasRole(domain.RoleJuror, juror))
}

func TestRevokeJuror(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.GrantJuror(admin, juror, nil, nil))

	assert.EqualError(t, r.RevokeJuror(guest, juror), "account guest is missing role admin")
	require.NoError(t, r.RevokeJuror(admin, juror))
	assert.False(t, r.HasRole(domain.RoleJuror, juror))
}

func TestRoles(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.GrantJuror(admin, admin, nil, nil))
	r.GrantParticipant(admin)

	roles := r.Roles(admin)
	assert.True(t, roles.Contains(domain.RoleAdmin, domain.RoleJuror, domain.RoleParticipant))
	assert.False(t, roles.Contains(domain.RoleSuperAdmin))
	assert.Equal(t, 0, r.Roles(guest).Cardinality())
	assert.Equal(t, []domain.Account{admin, owner}, r.Members(domain.RoleAdmin))
}

func TestRequire(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		name    string
		role    domain.Role
		account domain.Account
		wantErr string
	}{
		{name: "admin ok", role: domain.RoleAdmin, account: admin},
		{name: "guest admin", role: domain.RoleAdmin, account: guest, wantErr: "account guest is missing role admin"},
		{name: "guest juror", role: domain.RoleJuror, account: guest, wantErr: "account guest is missing role juror"},
		{name: "guest participant", role: domain.RoleParticipant, account: guest, wantErr: "account guest is missing role participant"},
		{name: "admin superadmin", role: domain.RoleSuperAdmin, account: admin, wantErr: "account admin is missing role superadmin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Require(tt.role, tt.account)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
		})
	}
}
