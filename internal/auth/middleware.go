package auth

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/session"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

const sessionLocalKey = "auth_session"

// SessionContext bundles the request's hydrated session store with its
// permission oracle.
type SessionContext struct {
	Store  *session.Store
	Oracle *session.Oracle
}

// Identity returns the authenticated principal.
func (sc *SessionContext) Identity() (domain.Identity, bool) {
	if sc == nil || sc.Store == nil {
		return domain.Identity{}, false
	}
	return sc.Store.Identity()
}

// Middleware validates bearer tokens and hydrates session state. Session
// contexts are kept per token id so the oracle's grant freshness window spans
// requests instead of resetting on every call.
type Middleware struct {
	tokens    *TokenManager
	blobs     session.BlobStore
	authority session.Authority
	cfg       config.SessionConfig
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*SessionContext
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, blobs session.BlobStore, authority session.Authority, cfg config.SessionConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:    tokens,
		blobs:     blobs,
		authority: authority,
		cfg:       cfg,
		logger:    logger,
		sessions:  make(map[string]*SessionContext),
	}
}

// SlotKey names the durable storage slot for a token id.
func (m *Middleware) SlotKey(tokenID string) string {
	return session.SlotKey(m.cfg.StorageKey, tokenID)
}

// Handle enforces authentication for protected routes. The session slot is
// re-hydrated per request, so a logged-out token is rejected even before its
// signature expires.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	raw := bearerToken(c, m.cfg.TokenCookie)
	if raw == "" {
		return apperrors.NewUnauthorized("missing credentials")
	}

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	sc := m.sessionContext(claims.ID)
	if !sc.Store.Hydrate(c.Context()) {
		m.evict(claims.ID)
		return apperrors.NewUnauthorized("session expired")
	}
	if current, _ := sc.Store.Token(); current != raw {
		return apperrors.NewUnauthorized("session mismatch")
	}

	c.Locals(sessionLocalKey, sc)
	return c.Next()
}

// sessionContext returns the cached context for a token id, creating one on
// first sight.
func (m *Middleware) sessionContext(tokenID string) *SessionContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sc, ok := m.sessions[tokenID]; ok {
		return sc
	}

	store := session.NewStore(m.blobs, m.SlotKey(tokenID), m.logger)
	sc := &SessionContext{
		Store:  store,
		Oracle: session.NewOracle(store, m.authority, m.cfg.GrantTTL(), m.logger),
	}
	m.sessions[tokenID] = sc
	return sc
}

func (m *Middleware) evict(tokenID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenID)
}

// SessionFromContext retrieves the authenticated session context.
func SessionFromContext(c *fiber.Ctx) (*SessionContext, bool) {
	val := c.Locals(sessionLocalKey)
	if val == nil {
		return nil, false
	}
	sc, ok := val.(*SessionContext)
	return sc, ok
}

func bearerToken(c *fiber.Ctx, cookieName string) string {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(cookieName)
}
