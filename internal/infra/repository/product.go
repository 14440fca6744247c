package repository

import (
	"context"

	"restaurant-backend/internal/domain/product"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(pool db.DBTX) *ProductRepository {
	return &ProductRepository{db: pool}
}

const createProductSQL = `
INSERT INTO products (id, name, description, price_cents, category, available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *ProductRepository) Create(ctx context.Context, tx db.DBTX, p *product.Product) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, createProductSQL,
		p.ID(), p.Name(), p.Description(), p.PriceCents(),
		string(p.Category()), p.Available(),
		pgconv.TimeToPgtype(p.CreatedAt()), pgconv.TimeToPgtype(p.UpdatedAt()),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create product", err)
	}

	return p.ID(), nil
}

const updateProductSQL = `
UPDATE products
SET name = $2, description = $3, price_cents = $4, category = $5, available = $6, updated_at = now()
WHERE id = $1
`

func (r *ProductRepository) Update(ctx context.Context, tx db.DBTX, p *product.Product) error {
	tag, err := tx.Exec(ctx, updateProductSQL,
		p.ID(), p.Name(), p.Description(), p.PriceCents(), string(p.Category()), p.Available())
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}

	return nil
}

const deleteProductSQL = `
DELETE FROM products WHERE id = $1
`

func (r *ProductRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}

	return nil
}
