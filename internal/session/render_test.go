package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumhr/portal-service/internal/domain"
)

func snapshotWithGrants(t *testing.T, role domain.Role, grants []domain.Grant) Snapshot {
	t.Helper()
	store, _ := newTestStore(t)
	identity := adminIdentity()
	identity.Role = role
	require.NoError(t, store.SetSession(context.Background(), identity, "tok-1"))
	require.True(t, store.SetGrants("tok-1", grants))
	return store.Snapshot()
}

func TestShouldRenderRequiresIdentity(t *testing.T) {
	assert.False(t, ShouldRender(Snapshot{}, Constraints{}))
}

func TestShouldRenderNoConstraints(t *testing.T) {
	snap := snapshotWithGrants(t, domain.RoleEmployee, nil)
	assert.True(t, ShouldRender(snap, Constraints{}))
}

func TestShouldRenderRoleConstraint(t *testing.T) {
	snap := snapshotWithGrants(t, domain.RoleManager, nil)

	assert.True(t, ShouldRender(snap, Constraints{
		AllowedRoles: []domain.Role{domain.RoleManager, domain.RoleHRAdmin},
	}))
	assert.False(t, ShouldRender(snap, Constraints{
		AllowedRoles: []domain.Role{domain.RoleSuperAdmin},
	}))
}

func TestShouldRenderGrantConstraint(t *testing.T) {
	snap := snapshotWithGrants(t, domain.RoleHRAdmin, []domain.Grant{
		{Resource: "employees", Action: domain.ActionCreate, Granted: true},
	})

	assert.True(t, ShouldRender(snap, Constraints{Resource: "employees", Action: domain.ActionCreate}))
	assert.False(t, ShouldRender(snap, Constraints{Resource: "employees", Action: domain.ActionDelete}))
}

func TestShouldRenderConstraintsAreConjunctive(t *testing.T) {
	snap := snapshotWithGrants(t, domain.RoleManager, []domain.Grant{
		{Resource: "leaves", Action: domain.ActionUpdate, Granted: true},
	})

	// Grant passes but role fails: the fragment stays hidden.
	assert.False(t, ShouldRender(snap, Constraints{
		AllowedRoles: []domain.Role{domain.RoleSuperAdmin},
		Resource:     "leaves",
		Action:       domain.ActionUpdate,
	}))
	// Role passes but grant fails.
	assert.False(t, ShouldRender(snap, Constraints{
		AllowedRoles: []domain.Role{domain.RoleManager},
		Resource:     "payroll",
		Action:       domain.ActionRead,
	}))
	// Both pass.
	assert.True(t, ShouldRender(snap, Constraints{
		AllowedRoles: []domain.Role{domain.RoleManager},
		Resource:     "leaves",
		Action:       domain.ActionUpdate,
	}))
}
