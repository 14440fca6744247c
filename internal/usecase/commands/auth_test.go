//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant-backend/internal/domain/user"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/jwt"
	"restaurant-backend/internal/pkg/password"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserReadStore struct {
	mock.Mock
}

func (m *mockUserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUser, string, error) {
	args := m.Called(ctx, email)
	if v, ok := args.Get(0).(*queries.AuthorizedUser); ok {
		return v, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUser, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*queries.AuthorizedUser); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLoginRepo struct {
	mock.Mock
}

func (m *mockLoginRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func testJWTService() *jwt.Service {
	return jwt.NewService("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("creates a customer account", func(t *testing.T) {
		uow := newFakeUoW()
		uow.tx.users.On("Create",
			mock.Anything, mock.Anything, mock.Anything,
			mock.MatchedBy(func(email user.Email) bool { return email.Value() == "new@example.com" }),
			mock.Anything, "Jamie Example", user.RoleCustomer,
		).Return(uuid.New(), nil)

		svc := commands.NewAuthCommands(uow, &mockUserReadStore{}, &mockLoginRepo{}, testJWTService())
		id, err := svc.Register(context.Background(), commands.RegisterInput{
			Email:    "new@example.com",
			Password: "s3cret-pass",
			Name:     "Jamie Example",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		uow.tx.users.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := commands.NewAuthCommands(newFakeUoW(), &mockUserReadStore{}, &mockLoginRepo{}, testJWTService())
		_, err := svc.Register(context.Background(), commands.RegisterInput{Email: "not-an-email", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, commands.ErrAuthenticationFailed)
	})

	t.Run("short password", func(t *testing.T) {
		svc := commands.NewAuthCommands(newFakeUoW(), &mockUserReadStore{}, &mockLoginRepo{}, testJWTService())
		_, err := svc.Register(context.Background(), commands.RegisterInput{Email: "new@example.com", Password: "short"})
		assert.ErrorIs(t, err, commands.ErrAuthenticationFailed)
	})

	t.Run("duplicate email", func(t *testing.T) {
		uow := newFakeUoW()
		uow.tx.users.On("Create",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		).Return(uuid.Nil, infra.NewRepoErr(infra.KindDuplicateKey, "email taken"))

		svc := commands.NewAuthCommands(uow, &mockUserReadStore{}, &mockLoginRepo{}, testJWTService())
		_, err := svc.Register(context.Background(), commands.RegisterInput{
			Email:    "taken@example.com",
			Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, commands.ErrEmailAlreadyTaken)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.HashPassword("s3cret-pass")
	require.NoError(t, err)

	authorized := &queries.AuthorizedUser{
		ID:    uuid.New(),
		Email: "c@example.com",
		Name:  "Jamie Example",
		Role:  "customer",
	}

	t.Run("returns a verifiable token", func(t *testing.T) {
		readStore := &mockUserReadStore{}
		loginRepo := &mockLoginRepo{}
		readStore.On("FindByEmail", mock.Anything, "c@example.com").Return(authorized, hash, nil)
		loginRepo.On("UpdateLastLogin", mock.Anything, authorized.ID).Return(nil)

		jwtService := testJWTService()
		svc := commands.NewAuthCommands(newFakeUoW(), readStore, loginRepo, jwtService)
		result, err := svc.Login(context.Background(), "c@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, authorized.ID, result.UserID)
		claims, err := jwtService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, authorized.ID, claims.UserID)
		assert.Equal(t, "customer", claims.Role)
		loginRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		readStore := &mockUserReadStore{}
		readStore.On("FindByEmail", mock.Anything, "c@example.com").Return(authorized, hash, nil)

		svc := commands.NewAuthCommands(newFakeUoW(), readStore, &mockLoginRepo{}, testJWTService())
		_, err := svc.Login(context.Background(), "c@example.com", "wrong-pass")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email reads like a bad password", func(t *testing.T) {
		readStore := &mockUserReadStore{}
		readStore.On("FindByEmail", mock.Anything, "nobody@example.com").
			Return(nil, "", infra.NewRepoErr(infra.KindNotFound, "user not found"))

		svc := commands.NewAuthCommands(newFakeUoW(), readStore, &mockLoginRepo{}, testJWTService())
		_, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("failed last-login update does not fail the login", func(t *testing.T) {
		readStore := &mockUserReadStore{}
		loginRepo := &mockLoginRepo{}
		readStore.On("FindByEmail", mock.Anything, "c@example.com").Return(authorized, hash, nil)
		loginRepo.On("UpdateLastLogin", mock.Anything, authorized.ID).Return(assert.AnError)

		svc := commands.NewAuthCommands(newFakeUoW(), readStore, loginRepo, testJWTService())
		result, err := svc.Login(context.Background(), "c@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})
}
