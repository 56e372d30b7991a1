package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantumhr/portal-service/internal/auth"
	"github.com/quantumhr/portal-service/internal/domain"
)

func newUserService(users *fakeUserRepo, permissions *fakePermissionRepo) *UserService {
	return NewUserService(users, permissions, 4, zap.NewNop())
}

func TestCreateAccountHashesPasswordAndDefaultsStatus(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newUserService(users, &fakePermissionRepo{})
	ctx := context.Background()

	account := &domain.User{
		Email:     "hr@quantumhr.com",
		Role:      domain.RoleHRAdmin,
		FirstName: "Harper",
		LastName:  "Reyes",
	}
	require.NoError(t, svc.CreateAccount(ctx, account, "password123"))
	require.NotEmpty(t, account.ID)
	assert.Equal(t, domain.UserStatusActive, account.Status)

	stored, err := users.GetByEmail(ctx, "hr@quantumhr.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "password123"))
}

func TestCreateAccountRejectsBadInput(t *testing.T) {
	svc := newUserService(&fakeUserRepo{}, &fakePermissionRepo{})
	ctx := context.Background()

	missingName := &domain.User{Email: "x@quantumhr.com", Role: domain.RoleEmployee}
	assert.Error(t, svc.CreateAccount(ctx, missingName, "password123"))

	badRole := &domain.User{Email: "x@quantumhr.com", Role: "owner", FirstName: "X", LastName: "Y"}
	assert.Error(t, svc.CreateAccount(ctx, badRole, "password123"))

	shortSecret := &domain.User{Email: "x@quantumhr.com", Role: domain.RoleEmployee, FirstName: "X", LastName: "Y"}
	assert.Error(t, svc.CreateAccount(ctx, shortSecret, "short"))
}

func TestCreateAccountConflictsOnDuplicateEmail(t *testing.T) {
	users := seedDirectory(t)
	svc := newUserService(users, &fakePermissionRepo{})

	duplicate := &domain.User{
		Email:     "admin@quantumhr.com",
		Role:      domain.RoleEmployee,
		FirstName: "Other",
		LastName:  "Person",
	}
	err := svc.CreateAccount(context.Background(), duplicate, "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestUpdateAccountKeepsPasswordWhenBlank(t *testing.T) {
	users := seedDirectory(t)
	svc := newUserService(users, &fakePermissionRepo{})
	ctx := context.Background()

	before, err := users.GetByEmail(ctx, "admin@quantumhr.com")
	require.NoError(t, err)

	updated := &domain.User{
		ID:        before.ID,
		Email:     before.Email,
		Role:      before.Role,
		FirstName: "Renamed",
		LastName:  before.LastName,
	}
	require.NoError(t, svc.UpdateAccount(ctx, updated, ""))
	assert.Equal(t, before.PasswordHash, updated.PasswordHash)
	assert.Equal(t, before.Status, updated.Status)

	require.NoError(t, svc.UpdateAccount(ctx, updated, "newsecret99"))
	assert.NotEqual(t, before.PasswordHash, updated.PasswordHash)
	assert.NoError(t, auth.ComparePassword(updated.PasswordHash, "newsecret99"))
}

func TestReplaceGrantsValidatesAndStores(t *testing.T) {
	users := seedDirectory(t)
	permissions := &fakePermissionRepo{}
	svc := newUserService(users, permissions)
	ctx := context.Background()

	err := svc.ReplaceGrants(ctx, "u-admin", []domain.Grant{
		{Resource: "employees", Action: "approve", Granted: true},
	})
	assert.Error(t, err)

	err = svc.ReplaceGrants(ctx, "u-missing", []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
	})
	assert.Error(t, err)

	grants := []domain.Grant{
		{Resource: "employees", Action: domain.ActionRead, Granted: true},
		{Resource: "payroll", Action: domain.ActionRead, Granted: false},
	}
	require.NoError(t, svc.ReplaceGrants(ctx, "u-admin", grants))

	stored, err := permissions.ListGrants(ctx, "u-admin")
	require.NoError(t, err)
	assert.Equal(t, grants, stored)
}
