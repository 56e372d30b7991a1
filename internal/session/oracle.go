package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/pkg/util"
)

// Authority resolves the full grant set for an identity.
type Authority interface {
	ListGrants(ctx context.Context, userID string) ([]domain.Grant, error)
}

// Oracle fetches grants from the authorization authority and installs them
// into the session store. Results stay fresh for a bounded window before a
// dependent read triggers a re-fetch.
type Oracle struct {
	store     *Store
	authority Authority
	ttl       time.Duration
	logger    *zap.Logger

	mu         sync.Mutex
	fetchedFor string
	fetchedAt  time.Time
}

// NewOracle builds an oracle bound to one session store.
func NewOracle(store *Store, authority Authority, ttl time.Duration, logger *zap.Logger) *Oracle {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Oracle{store: store, authority: authority, ttl: ttl, logger: logger}
}

// Refresh fetches the grant set for the current identity. A store without
// both identity and token is not an error; the fetch is simply not
// applicable. On authority failure the existing grant set stays in place and
// the error surfaces to the caller; a transient refresh failure must not
// de-authorize a user mid-session.
func (o *Oracle) Refresh(ctx context.Context) error {
	identity, haveIdentity := o.store.Identity()
	token, haveToken := o.store.Token()
	if !haveIdentity || !haveToken {
		return nil
	}

	grants, err := o.authority.ListGrants(ctx, identity.ID)
	if err != nil {
		o.logger.Warn("permission refresh failed",
			zap.String("user_id", identity.ID),
			zap.Error(err))
		return util.NewPermissionFetchFailed(err)
	}

	if !o.store.SetGrants(token, grants) {
		// The session changed while the fetch was in flight; the result
		// belongs to a token that is no longer current.
		o.logger.Debug("discarding grants for superseded session", zap.String("user_id", identity.ID))
		return nil
	}

	o.mu.Lock()
	o.fetchedFor = token
	o.fetchedAt = time.Now()
	o.mu.Unlock()
	return nil
}

// Ensure refreshes only when the current session has no fresh grant set.
func (o *Oracle) Ensure(ctx context.Context) error {
	token, ok := o.store.Token()
	if !ok {
		return nil
	}

	o.mu.Lock()
	fresh := o.fetchedFor == token && time.Since(o.fetchedAt) < o.ttl
	o.mu.Unlock()
	if fresh {
		return nil
	}
	return o.Refresh(ctx)
}
