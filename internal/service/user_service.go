package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/repository"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

const minPasswordLength = 8

// UserService manages portal accounts and their grant sets.
type UserService struct {
	users       repository.UserRepository
	permissions repository.PermissionRepository
	bcryptCost  int
	logger      *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, permissions repository.PermissionRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, permissions: permissions, bcryptCost: bcryptCost, logger: logger}
}

// CreateAccount registers a new portal account with a hashed secret.
func (s *UserService) CreateAccount(ctx context.Context, user *domain.User, password string) error {
	if user.Email == "" || user.FirstName == "" || user.LastName == "" {
		return apperrors.NewValidationError("name and email are required", nil)
	}
	if !user.Role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": user.Role})
	}
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	if existing, err := s.users.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if user.Status == "" {
		user.Status = domain.UserStatusActive
	}
	return s.users.Create(ctx, user)
}

// UpdateAccount stores profile, role and status changes. An empty password
// keeps the current secret.
func (s *UserService) UpdateAccount(ctx context.Context, user *domain.User, password string) error {
	current, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if !user.Role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": user.Role})
	}

	user.PasswordHash = current.PasswordHash
	if password != "" {
		if len(password) < minPasswordLength {
			return apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
		}
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	if user.Status == "" {
		user.Status = current.Status
	}
	return s.users.Update(ctx, user)
}

// GetAccount fetches one portal account.
func (s *UserService) GetAccount(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListAccounts returns the portal directory.
func (s *UserService) ListAccounts(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ReplaceGrants swaps a user's grant set wholesale. Sessions pick up the new
// set on their next permission refresh; nothing is revoked mid-window.
func (s *UserService) ReplaceGrants(ctx context.Context, userID string, grants []domain.Grant) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	for _, grant := range grants {
		if grant.Resource == "" || !grant.Action.Valid() {
			return apperrors.NewValidationError("grants need a resource and a known action",
				map[string]any{"resource": grant.Resource, "action": grant.Action})
		}
	}

	if err := s.permissions.ReplaceGrants(ctx, userID, grants); err != nil {
		return err
	}
	s.logger.Info("grant set replaced", zap.String("user_id", userID), zap.Int("grants", len(grants)))
	return nil
}
