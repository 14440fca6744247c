package commands

import (
	"context"

	"github.com/google/uuid"

	"restaurant-backend/internal/domain/product"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/usecase/shared"
)

var (
	ErrProductValidation = errs.New("product validation error")
	ErrProductInUse      = errs.New("product referenced by orders")
)

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Available   bool
}

type ProductCommands interface {
	CreateProduct(ctx context.Context, input ProductInput) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewProductCommands(uow shared.UnitOfWork, clk clock.Clock) ProductCommands {
	return &productCommandsImpl{uow: uow, clock: clk}
}

func (p *productCommandsImpl) CreateProduct(ctx context.Context, input ProductInput) (uuid.UUID, error) {
	entity, err := product.NewProduct(
		input.Name, input.Description, input.PriceCents,
		product.Category(input.Category), input.Available,
		p.clock.Now(),
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrProductValidation)
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, createErr := tx.Products().Create(ctx, tx.DB(), entity)
		return createErr
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create product")
	}

	return entity.ID(), nil
}

func (p *productCommandsImpl) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) error {
	entity, err := product.NewProduct(
		input.Name, input.Description, input.PriceCents,
		product.Category(input.Category), input.Available,
		p.clock.Now(),
	)
	if err != nil {
		return errs.Mark(err, ErrProductValidation)
	}
	entity = product.ReconstructProduct(
		id, entity.Name(), entity.Description(), entity.PriceCents(),
		entity.Category(), entity.Available(), entity.CreatedAt(), entity.UpdatedAt(),
	)

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Update(ctx, tx.DB(), entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrProductNotFound
		}
		return errs.Wrap(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes a catalog entry. Order items keep a denormalized
// name and price, so history survives, but the row itself is protected
// by the order_items foreign key.
func (p *productCommandsImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Delete(ctx, tx.DB(), id)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrProductNotFound
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return ErrProductInUse
		}
		return errs.Wrap(err, "failed to delete product")
	}

	return nil
}
