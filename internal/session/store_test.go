package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *MemoryBlobStore) {
	t.Helper()
	blobs := NewMemoryBlobStore()
	return NewStore(blobs, "quantum-hr-auth", zap.NewNop()), blobs
}

func adminIdentity() domain.Identity {
	return domain.Identity{
		ID:        "u-1",
		Email:     "admin@quantumhr.com",
		Role:      domain.RoleSuperAdmin,
		FirstName: "Ava",
		LastName:  "Quantum",
	}
}

func TestStoreEmptyByDefault(t *testing.T) {
	store, _ := newTestStore(t)

	assert.False(t, store.IsAuthenticated())
	_, ok := store.Identity()
	assert.False(t, ok)
	assert.False(t, store.HasPermission("employees", domain.ActionRead))
}

func TestSetSessionPersistsAndAuthenticates(t *testing.T) {
	store, blobs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))

	assert.True(t, store.IsAuthenticated())
	identity, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, domain.RoleSuperAdmin, identity.Role)
	assert.Equal(t, 1, blobs.Len())
}

func TestGrantsNeverInheritAcrossSessions(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.True(t, store.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionCreate, Granted: true},
	}))
	require.True(t, store.HasPermission("employees", domain.ActionCreate))

	// Re-login replaces the session; the fresh session starts with no grants.
	next := adminIdentity()
	next.ID = "u-2"
	require.NoError(t, store.SetSession(ctx, next, "tok-2"))

	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.HasPermission("employees", domain.ActionCreate))
}

func TestHasPermissionFailClosed(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.True(t, store.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionCreate, Granted: true},
		{Resource: "payroll", Action: domain.ActionRead, Granted: false},
		// duplicate pair; any granted entry is sufficient
		{Resource: "employees", Action: domain.ActionCreate, Granted: false},
	}))

	assert.True(t, store.HasPermission("employees", domain.ActionCreate))
	assert.False(t, store.HasPermission("employees", domain.ActionDelete))
	assert.False(t, store.HasPermission("payroll", domain.ActionRead))
	assert.False(t, store.HasPermission("reports", domain.ActionRead))
}

func TestSetGrantsDiscardsStaleToken(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.NoError(t, store.Clear(ctx))

	// A fetch that raced behind the logout must not re-authorize anything.
	installed := store.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
	})
	assert.False(t, installed)
	assert.False(t, store.HasPermission("employees", domain.ActionRead))
}

func TestClearIsIdempotent(t *testing.T) {
	store, blobs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 0, blobs.Len())
}

func TestHydrateWithoutPersistedSession(t *testing.T) {
	store, _ := newTestStore(t)

	assert.False(t, store.Hydrate(context.Background()))
	assert.False(t, store.IsAuthenticated())
}

func TestHydrateRestoresIdentityButNotGrants(t *testing.T) {
	blobs := NewMemoryBlobStore()
	ctx := context.Background()

	first := NewStore(blobs, "quantum-hr-auth", zap.NewNop())
	require.NoError(t, first.SetSession(ctx, adminIdentity(), "tok-1"))
	require.True(t, first.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
	}))

	// A fresh process hydrates from the same slot.
	second := NewStore(blobs, "quantum-hr-auth", zap.NewNop())
	require.True(t, second.Hydrate(ctx))

	assert.True(t, second.IsAuthenticated())
	identity, ok := second.Identity()
	require.True(t, ok)
	assert.Equal(t, "admin@quantumhr.com", identity.Email)
	// Grants may have changed server-side; they must be re-fetched.
	assert.False(t, second.HasPermission("employees", domain.ActionRead))
}

func TestHydrateKeepsGrantsWhileTokenUnchanged(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.True(t, store.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
	}))

	// Re-reading the same slot on a live store must not wipe the resolved
	// grant set; only a different token resets it.
	require.True(t, store.Hydrate(ctx))
	assert.True(t, store.HasPermission("employees", domain.ActionRead))
}

func TestHydrateDiscardsMalformedSlot(t *testing.T) {
	blobs := NewMemoryBlobStore()
	ctx := context.Background()
	require.NoError(t, blobs.Set(ctx, "quantum-hr-auth", []byte("{not json")))

	store := NewStore(blobs, "quantum-hr-auth", zap.NewNop())
	assert.False(t, store.Hydrate(ctx))
	assert.False(t, store.IsAuthenticated())
}

func TestHydrateDiscardsIncompleteSlot(t *testing.T) {
	blobs := NewMemoryBlobStore()
	ctx := context.Background()
	require.NoError(t, blobs.Set(ctx, "quantum-hr-auth", []byte(`{"identity":{"id":"u-1","role":"astronaut"},"token":"tok-1"}`)))

	store := NewStore(blobs, "quantum-hr-auth", zap.NewNop())
	assert.False(t, store.Hydrate(ctx))
	assert.False(t, store.IsAuthenticated())
}

func TestSnapshotIsImmutable(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.True(t, store.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
	}))

	snap := store.Snapshot()
	require.NoError(t, store.Clear(ctx))

	// The snapshot still reflects the state at capture time.
	assert.True(t, snap.Authenticated)
	assert.True(t, snap.HasPermission("employees", domain.ActionRead))
	assert.False(t, store.HasPermission("employees", domain.ActionRead))
}
