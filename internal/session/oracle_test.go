package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/domain"
)

type fakeAuthority struct {
	grants []domain.Grant
	err    error
	calls  int
}

func (f *fakeAuthority) ListGrants(_ context.Context, _ string) ([]domain.Grant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.grants, nil
}

func TestRefreshIsNoOpWithoutSession(t *testing.T) {
	store, _ := newTestStore(t)
	authority := &fakeAuthority{}
	oracle := NewOracle(store, authority, time.Minute, zap.NewNop())

	require.NoError(t, oracle.Refresh(context.Background()))
	assert.Equal(t, 0, authority.calls)
}

func TestRefreshInstallsGrants(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))

	authority := &fakeAuthority{grants: []domain.Grant{
		{Resource: "employees", Action: domain.ActionCreate, Granted: true},
	}}
	oracle := NewOracle(store, authority, time.Minute, zap.NewNop())

	require.NoError(t, oracle.Refresh(ctx))
	assert.True(t, store.HasPermission("employees", domain.ActionCreate))
	assert.False(t, store.HasPermission("employees", domain.ActionDelete))
}

func TestRefreshFailureKeepsExistingGrants(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))
	require.True(t, store.SetGrants("tok-1", []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
	}))

	authority := &fakeAuthority{err: errors.New("authority unreachable")}
	oracle := NewOracle(store, authority, time.Minute, zap.NewNop())

	err := oracle.Refresh(ctx)
	require.Error(t, err)

	// The stale set stays in place; a transient failure must not silently
	// de-authorize the user.
	assert.True(t, store.HasPermission("employees", domain.ActionRead))
	assert.False(t, store.HasPermission("employees", domain.ActionDelete))
}

func TestRefreshDiscardsResultAfterLogout(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))

	authority := &slowLogoutAuthority{store: store}
	oracle := NewOracle(store, authority, time.Minute, zap.NewNop())

	require.NoError(t, oracle.Refresh(ctx))
	assert.False(t, store.HasPermission("employees", domain.ActionRead))
	assert.False(t, store.IsAuthenticated())
}

// slowLogoutAuthority clears the session while its fetch is "in flight",
// simulating a logout racing an oracle refresh.
type slowLogoutAuthority struct {
	store *Store
}

func (a *slowLogoutAuthority) ListGrants(ctx context.Context, _ string) ([]domain.Grant, error) {
	_ = a.store.Clear(ctx)
	return []domain.Grant{{Resource: "employees", Action: domain.ActionRead, Granted: true}}, nil
}

func TestEnsureSkipsFreshGrants(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))

	authority := &fakeAuthority{}
	oracle := NewOracle(store, authority, time.Minute, zap.NewNop())

	require.NoError(t, oracle.Ensure(ctx))
	require.NoError(t, oracle.Ensure(ctx))
	assert.Equal(t, 1, authority.calls)
}

func TestEnsureRefetchesForNewSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-1"))

	authority := &fakeAuthority{}
	oracle := NewOracle(store, authority, time.Minute, zap.NewNop())
	require.NoError(t, oracle.Ensure(ctx))

	require.NoError(t, store.SetSession(ctx, adminIdentity(), "tok-2"))
	require.NoError(t, oracle.Ensure(ctx))
	assert.Equal(t, 2, authority.calls)
}
