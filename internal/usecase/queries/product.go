package queries

import (
	"context"

	"github.com/google/uuid"

	"restaurant-backend/internal/infra"
)

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListAvailable(ctx context.Context) ([]*ProductView, error)
	ListAll(ctx context.Context) ([]*ProductView, error)
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListAvailable(ctx context.Context) ([]*ProductView, error)
	ListAll(ctx context.Context) ([]*ProductView, error)
}

type productQueriesImpl struct {
	products ProductReadStore
}

func NewProductQueries(products ProductReadStore) ProductQueries {
	return &productQueriesImpl{products: products}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	view, err := q.products.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *productQueriesImpl) ListAvailable(ctx context.Context) ([]*ProductView, error) {
	return q.products.ListAvailable(ctx)
}

func (q *productQueriesImpl) ListAll(ctx context.Context) ([]*ProductView, error) {
	return q.products.ListAll(ctx)
}
