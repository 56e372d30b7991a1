package session

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/domain"
)

// Store holds the authenticated identity, session token and resolved grant
// set for one logical session. All mutations are atomic with respect to
// concurrent reads; no reader can observe a new identity paired with a stale
// grant set. Identity and token survive restarts through the injected
// BlobStore; grants never do and are re-resolved after every hydration.
type Store struct {
	mu     sync.RWMutex
	blobs  BlobStore
	key    string
	logger *zap.Logger

	identity *domain.Identity
	token    string
	grants   []domain.Grant
}

type persistedSession struct {
	Identity domain.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// NewStore creates an empty session store bound to one storage slot.
func NewStore(blobs BlobStore, key string, logger *zap.Logger) *Store {
	return &Store{blobs: blobs, key: key, logger: logger}
}

// SetSession replaces identity and token atomically and persists the pair.
// The grant set is reset; a fresh session never inherits grants from a
// previous one. The durable write completes before the new identity becomes
// observable.
func (s *Store) SetSession(ctx context.Context, identity domain.Identity, token string) error {
	payload, err := json.Marshal(persistedSession{Identity: identity, Token: token})
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, s.key, payload); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
	s.token = token
	s.grants = nil
	return nil
}

// SetGrants replaces the grant set wholesale. The token identifies the
// session the grants were resolved for; a late-arriving install that races
// behind a logout or re-login is discarded. Returns whether the install took
// effect.
func (s *Store) SetGrants(token string, grants []domain.Grant) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.token {
		return false
	}
	s.grants = make([]domain.Grant, len(grants))
	copy(s.grants, grants)
	return true
}

// Clear resets identity, token and grants and removes the persisted slot.
// Safe to call when already cleared.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.grants = nil
	s.mu.Unlock()

	return s.blobs.Delete(ctx, s.key)
}

// Hydrate restores identity and token from the persisted slot, if one exists
// and is well-formed. Grants are never restored from the slot; they survive
// only when the slot still names the token already held in memory, otherwise
// they reset and must be re-resolved. Absent or malformed slots leave the
// store empty. Reports whether a session was restored.
func (s *Store) Hydrate(ctx context.Context) bool {
	payload, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("session hydrate failed", zap.Error(err))
		return false
	}
	if payload == nil {
		return false
	}

	var stored persistedSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		s.logger.Warn("discarding malformed persisted session", zap.Error(err))
		return false
	}
	if stored.Identity.ID == "" || stored.Token == "" || !stored.Identity.Role.Valid() {
		s.logger.Warn("discarding malformed persisted session")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stored.Token != s.token {
		s.grants = nil
	}
	s.identity = &stored.Identity
	s.token = stored.Token
	return true
}

// IsAuthenticated is true iff both identity and token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.token != ""
}

// Identity returns the current identity, if any.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Token returns the current session token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// HasPermission reports whether at least one grant matches the resource and
// action with granted set. Fail-closed: false while unauthenticated or while
// the grant set is empty.
func (s *Store) HasPermission(resource string, action domain.GrantAction) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil || s.token == "" {
		return false
	}
	for _, grant := range s.grants {
		if grant.Resource == resource && grant.Action == action && grant.Granted {
			return true
		}
	}
	return false
}

// Snapshot returns an immutable copy of the session state for render-time
// decisions.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Token:         s.token,
		Authenticated: s.identity != nil && s.token != "",
	}
	if s.identity != nil {
		identity := *s.identity
		snap.Identity = &identity
	}
	if len(s.grants) > 0 {
		snap.Grants = make([]domain.Grant, len(s.grants))
		copy(snap.Grants, s.grants)
	}
	return snap
}

// Snapshot is a point-in-time copy of session state. Later store mutations
// do not affect it.
type Snapshot struct {
	Identity      *domain.Identity
	Token         string
	Grants        []domain.Grant
	Authenticated bool
}

// HasPermission mirrors Store.HasPermission over the copied grant set.
func (snap Snapshot) HasPermission(resource string, action domain.GrantAction) bool {
	if !snap.Authenticated {
		return false
	}
	for _, grant := range snap.Grants {
		if grant.Resource == resource && grant.Action == action && grant.Granted {
			return true
		}
	}
	return false
}
