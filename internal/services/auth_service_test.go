package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/room4rent/internal/auth"
	"github.com/stwalsh4118/room4rent/internal/logger"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/repository"
)

func newAuthFixture(t *testing.T) (AuthService, *MockUserRepository, *MockTenantRepository, *auth.TokenManager) {
	t.Helper()
	users := new(MockUserRepository)
	tenants := new(MockTenantRepository)
	tokens := auth.NewTokenManager("test-secret-0123456789", "room4rent", time.Hour)
	return NewAuthService(users, tenants, tokens, logger.New("test")), users, tenants, tokens
}

func userWithPassword(t *testing.T, role models.Role, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{ID: 7, Name: "Tenant One", Email: "one@example.com", PasswordHash: hash, Role: role}
}

func TestLogin_TenantSessionCarriesTenantID(t *testing.T) {
	// Arrange
	service, users, tenants, tokens := newAuthFixture(t)
	ctx := context.Background()
	users.On("FindByEmail", ctx, "one@example.com").Return(userWithPassword(t, models.RoleTenant, "secret1"), nil)
	tenants.On("FindActiveByUserID", ctx, int64(7)).Return(&models.TenantDetails{Tenant: models.Tenant{ID: 3}}, nil)

	// Act
	result, err := service.Login(ctx, "one@example.com", "secret1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, 3600, result.ExpiresIn)
	require.NotNil(t, result.TenantID)
	assert.Equal(t, int64(3), *result.TenantID)

	session, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, models.RoleTenant, session.Role)
	assert.True(t, session.OwnsTenant(3))
}

func TestLogin_AdminHasNoTenant(t *testing.T) {
	service, users, tenants, _ := newAuthFixture(t)
	ctx := context.Background()
	users.On("FindByEmail", ctx, "admin@example.com").Return(userWithPassword(t, models.RoleAdmin, "adminpw"), nil)

	result, err := service.Login(ctx, "admin@example.com", "adminpw")

	require.NoError(t, err)
	assert.Nil(t, result.TenantID)
	tenants.AssertNotCalled(t, "FindActiveByUserID", mock.Anything, mock.Anything)
}

func TestLogin_BadCredentials(t *testing.T) {
	service, users, _, _ := newAuthFixture(t)
	ctx := context.Background()
	users.On("FindByEmail", ctx, "one@example.com").Return(userWithPassword(t, models.RoleTenant, "secret1"), nil)
	users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

	_, err := service.Login(ctx, "one@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		service, users, _, _ := newAuthFixture(t)
		ctx := context.Background()
		users.On("FindByEmail", ctx, "admin@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAdmin && auth.CheckPassword(u.PasswordHash, "adminpw")
		})).Return(nil)

		require.NoError(t, service.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpw"))
		users.AssertExpectations(t)
	})

	t.Run("existing admin is left alone", func(t *testing.T) {
		service, users, _, _ := newAuthFixture(t)
		ctx := context.Background()
		users.On("FindByEmail", ctx, "admin@example.com").Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil)

		require.NoError(t, service.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpw"))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race is not an error", func(t *testing.T) {
		service, users, _, _ := newAuthFixture(t)
		ctx := context.Background()
		users.On("FindByEmail", ctx, "admin@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.Anything).Return(repository.ErrUniqueViolation)

		assert.NoError(t, service.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpw"))
	})
}
