package repository

import (
	"context"

	"restaurant-backend/internal/domain/user"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

const createUserSQL = `
INSERT INTO users (id, email, password_hash, name, role, created_at)
VALUES ($1, $2, $3, $4, $5, now())
`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, id uuid.UUID, email user.Email, passwordHash, name string, role user.Role) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, createUserSQL, id, email.Value(), passwordHash, name, role.String())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return id, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login_at = now() WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, updateLastLoginSQL, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}

	return nil
}

const findEmailByIDSQL = `
SELECT email FROM users WHERE id = $1
`

// FindEmailByID resolves the notification recipient for an order's
// account. Not-found maps to KindNotFound so callers can treat a missing
// recipient as "skip notification", never as a failed transition.
func (r *UserRepository) FindEmailByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (string, error) {
	var email string
	err := tx.QueryRow(ctx, findEmailByIDSQL, id).Scan(&email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		return "", infra.WrapRepoErr("failed to find user email", err)
	}

	return email, nil
}
