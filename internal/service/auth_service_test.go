package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/config"
	"github.com/quantumhr/portal-service/internal/domain"
	"github.com/quantumhr/portal-service/internal/session"
	apperrors "github.com/quantumhr/portal-service/pkg/util"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.User{}
	}
	f.nextID++
	user.ID = fmt.Sprintf("u-%d", f.nextID)
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for email, stored := range f.byEmail {
		if stored.ID == user.ID {
			delete(f.byEmail, email)
			updated := *user
			f.byEmail[user.Email] = &updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.byEmail {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakePermissionRepo struct {
	grants map[string][]domain.Grant
	err    error
}

func (f *fakePermissionRepo) ListGrants(_ context.Context, userID string) ([]domain.Grant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grants[userID], nil
}

func (f *fakePermissionRepo) ReplaceGrants(_ context.Context, userID string, grants []domain.Grant) error {
	if f.err != nil {
		return f.err
	}
	if f.grants == nil {
		f.grants = map[string][]domain.Grant{}
	}
	f.grants[userID] = append([]domain.Grant(nil), grants...)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4},
		Session: config.SessionConfig{
			StorageKey:      "quantum-hr-auth",
			GrantTTLMinutes: 5,
		},
	}
}

func seedDirectory(t *testing.T) *fakeUserRepo {
	t.Helper()
	hash, err := auth.HashPassword("password123", 4)
	require.NoError(t, err)
	return &fakeUserRepo{byEmail: map[string]*domain.User{
		"admin@quantumhr.com": {
			ID:           "u-admin",
			Email:        "admin@quantumhr.com",
			PasswordHash: hash,
			Role:         domain.RoleSuperAdmin,
			FirstName:    "Ava",
			LastName:     "Quantum",
			Status:       domain.UserStatusActive,
		},
	}}
}

func TestVerifyUnknownAndWrongSecretAreIndistinguishable(t *testing.T) {
	users := seedDirectory(t)
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:       users,
		PermissionRepo: &fakePermissionRepo{},
		Blobs:          session.NewMemoryBlobStore(),
	}, zap.NewNop())
	ctx := context.Background()

	_, errUnknown := svc.Verify(ctx, "nobody@quantumhr.com", "password123")
	_, errWrongSecret := svc.Verify(ctx, "admin@quantumhr.com", "wrong")

	require.Error(t, errUnknown)
	require.Error(t, errWrongSecret)

	var de1, de2 *apperrors.DomainError
	require.True(t, errors.As(errUnknown, &de1))
	require.True(t, errors.As(errWrongSecret, &de2))
	assert.Equal(t, de1.Code, de2.Code)
	assert.Equal(t, de1.Message, de2.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", de1.Code)
}

func TestLoginCommitsSessionAndWarmsGrants(t *testing.T) {
	users := seedDirectory(t)
	blobs := session.NewMemoryBlobStore()
	permissions := &fakePermissionRepo{grants: map[string][]domain.Grant{
		"u-admin": {{Resource: "employees", Action: domain.ActionCreate, Granted: true}},
	}}
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:       users,
		PermissionRepo: permissions,
		Blobs:          blobs,
	}, zap.NewNop())
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@quantumhr.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, result.Identity.Role)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, blobs.Len())

	// A fresh store hydrating from the committed slot sees the identity but
	// must re-resolve grants itself.
	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	store := session.NewStore(blobs, session.SlotKey("quantum-hr-auth", claims.ID), zap.NewNop())
	require.True(t, store.Hydrate(ctx))
	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.HasPermission("employees", domain.ActionCreate))

	require.True(t, store.SetGrants(result.Token, []domain.Grant{
		{Resource: "employees", Action: domain.ActionCreate, Granted: true},
	}))
	assert.True(t, store.HasPermission("employees", domain.ActionCreate))
	assert.False(t, store.HasPermission("employees", domain.ActionDelete))
}

func TestLoginSucceedsWhenGrantFetchFails(t *testing.T) {
	users := seedDirectory(t)
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:       users,
		PermissionRepo: &fakePermissionRepo{err: errors.New("authority down")},
		Blobs:          session.NewMemoryBlobStore(),
	}, zap.NewNop())

	result, err := svc.Login(context.Background(), "admin@quantumhr.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLogoutClearsSlotAndIsIdempotent(t *testing.T) {
	users := seedDirectory(t)
	blobs := session.NewMemoryBlobStore()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:       users,
		PermissionRepo: &fakePermissionRepo{},
		Blobs:          blobs,
	}, zap.NewNop())
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@quantumhr.com", "password123")
	require.NoError(t, err)
	require.Equal(t, 1, blobs.Len())

	require.NoError(t, svc.Logout(ctx, result.Token))
	require.NoError(t, svc.Logout(ctx, result.Token))
	assert.Equal(t, 0, blobs.Len())
}
