package readstore

import (
	"context"

	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/pgconv"
	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(pool db.DBTX) *UserReadStore {
	return &UserReadStore{db: pool}
}

const findUserByEmailSQL = `
SELECT id, email, password_hash, name, role, last_login_at, created_at
FROM users
WHERE email = $1
`

// FindByEmail returns the user view plus the stored password hash. The
// hash never leaves the auth flow.
func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUser, string, error) {
	var (
		view        queries.AuthorizedUser
		hash        string
		lastLoginAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&view.ID, &view.Email, &hash, &view.Name, &view.Role, &lastLoginAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	view.LastLoginAt = pgconv.TimePtrFromPgtype(lastLoginAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, hash, nil
}

const findUserByIDSQL = `
SELECT id, email, name, role, last_login_at, created_at
FROM users
WHERE id = $1
`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUser, error) {
	var (
		view        queries.AuthorizedUser
		lastLoginAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID, &view.Email, &view.Name, &view.Role, &lastLoginAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}

	view.LastLoginAt = pgconv.TimePtrFromPgtype(lastLoginAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
