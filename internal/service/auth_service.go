package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/repository"
	"github.com/quantumhr/portal-service/internal/session"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

// AuthService coordinates credential verification and session lifecycle.
type AuthService struct {
	users       repository.UserRepository
	permissions repository.PermissionRepository
	tokenMgr    *auth.TokenManager
	blobs       session.BlobStore
	sessionCfg  config.SessionConfig
	logger      *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	PermissionRepo repository.PermissionRepository
	Blobs          session.BlobStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		permissions: deps.PermissionRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		blobs:       deps.Blobs,
		sessionCfg:  cfg.Session,
		logger:      logger,
	}
}

// LoginResult carries the committed session back to the transport layer.
type LoginResult struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// Verify checks the submitted identifier and secret against the directory.
// An unknown identifier, a wrong secret and a suspended account are all
// reported as the same invalid-credentials failure so that callers cannot
// probe which factor failed.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewInvalidCredentials()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return user, nil
}

// Login verifies credentials, mints a session token and commits the session
// to its durable slot. The grant set starts empty; it is resolved separately
// and may lag behind the login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(s.blobs, session.SlotKey(s.sessionCfg.StorageKey, claims.ID), s.logger)
	if err := store.SetSession(ctx, user.Identity(), token); err != nil {
		return nil, err
	}

	// Warm the grant set; a failed fetch is observable but never blocks the
	// login itself.
	oracle := session.NewOracle(store, s.permissions, s.sessionCfg.GrantTTL(), s.logger)
	if err := oracle.Refresh(ctx); err != nil {
		s.logger.Warn("initial grant fetch failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	return &LoginResult{
		Identity:  user.Identity(),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout clears the session slot for the presented token. Clearing an
// already-cleared session succeeds.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.tokenMgr.ParseToken(tokenStr)
	if err != nil {
		// Nothing to clear for a token we never issued.
		return nil
	}
	store := session.NewStore(s.blobs, session.SlotKey(s.sessionCfg.StorageKey, claims.ID), s.logger)
	return store.Clear(ctx)
}

// ListGrants is the authorization authority surface consumed by portal
// clients refreshing their permission set.
func (s *AuthService) ListGrants(ctx context.Context, userID string) ([]domain.Grant, error) {
	grants, err := s.permissions.ListGrants(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPermissionFetchFailed(err)
	}
	return grants, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
