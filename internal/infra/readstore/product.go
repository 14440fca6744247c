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

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(pool db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: pool}
}

const productViewColumns = `
SELECT id, name, description, price_cents, category, available, created_at, updated_at
FROM products
`

func (s *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	var (
		view      queries.ProductView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, productViewColumns+" WHERE id = $1", id).Scan(
		&view.ID, &view.Name, &view.Description, &view.PriceCents,
		&view.Category, &view.Available, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "product not found")
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}

	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

// ListAvailable returns the public catalog; unavailable products are
// admin-only.
func (s *ProductReadStore) ListAvailable(ctx context.Context) ([]*queries.ProductView, error) {
	return s.list(ctx, productViewColumns+" WHERE available = true ORDER BY category, name")
}

func (s *ProductReadStore) ListAll(ctx context.Context) ([]*queries.ProductView, error) {
	return s.list(ctx, productViewColumns+" ORDER BY category, name")
}

func (s *ProductReadStore) list(ctx context.Context, query string) ([]*queries.ProductView, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	result := make([]*queries.ProductView, 0)
	for rows.Next() {
		var (
			view      queries.ProductView
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&view.ID, &view.Name, &view.Description, &view.PriceCents,
			&view.Category, &view.Available, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read product list", err)
	}

	return result, nil
}
