package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"restaurant-backend/internal/domain/user"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/pkg/jwt"
	"restaurant-backend/internal/pkg/password"
	"restaurant-backend/internal/usecase/queries"
	"restaurant-backend/internal/usecase/shared"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrEmailAlreadyTaken    = errs.New("email already taken")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginResult struct {
	UserID uuid.UUID
	Token  string
}

type AuthCommands interface {
	Register(ctx context.Context, input RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUser, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUser, error)
}

type LastLoginUpdater interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  UserReadStore
	loginRepo  LastLoginUpdater
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore UserReadStore, loginRepo LastLoginUpdater, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		loginRepo:  loginRepo,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, input RegisterInput) (uuid.UUID, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	rawPassword, err := user.NewPassword(input.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	hash, err := password.HashPassword(rawPassword.Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	userID := uuid.New()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, createErr := tx.Users().Create(ctx, tx.DB(), userID, email, hash, input.Name, user.RoleCustomer)
		return createErr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailAlreadyTaken
		}
		return uuid.Nil, errs.Wrap(err, "failed to register user")
	}

	return userID, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	userView, hash, err := a.readStore.FindByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}

	if err := password.ComparePassword(hash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(userView.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if updateErr := a.loginRepo.UpdateLastLogin(ctx, userView.ID); updateErr != nil {
		// Login already succeeded, the timestamp is best-effort
		slog.Warn("failed to update last login", "user_id", userView.ID, "error", updateErr.Error())
	}

	return &LoginResult{
		UserID: userView.ID,
		Token:  token,
	}, nil
}
