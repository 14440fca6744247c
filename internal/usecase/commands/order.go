package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/usecase/queries"
	"restaurant-backend/internal/usecase/shared"
)

var (
	ErrOrderNotFound       = errs.New("order not found")
	ErrProductNotFound     = errs.New("product not found")
	ErrProductUnavailable  = errs.New("product unavailable")
	ErrOrderValidation     = errs.New("order validation error")
	ErrInvalidOrderStatus  = errs.New("invalid order status")
	ErrOrderStorageFailure = errs.New("order storage failure")
)

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int32
}

type CreateOrderInput struct {
	UserID        *uuid.UUID // nil for guest checkout
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod string
	Items         []OrderItemInput
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*queries.OrderView, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error)
	ListAvailable(ctx context.Context) ([]*queries.ProductView, error)
	ListAll(ctx context.Context) ([]*queries.ProductView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.OrderListItem, error)
	ListAll(ctx context.Context, status *string, limit, offset int32) ([]*queries.OrderListItem, error)
}

type orderCommandsImpl struct {
	uow      shared.UnitOfWork
	products ProductReadStore
	orders   OrderReadStore
	clock    clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, products ProductReadStore, orders OrderReadStore, clk clock.Clock) OrderCommands {
	return &orderCommandsImpl{
		uow:      uow,
		products: products,
		orders:   orders,
		clock:    clk,
	}
}

// CreateOrder prices every line from the product catalog. Client-supplied
// prices are never trusted.
func (o *orderCommandsImpl) CreateOrder(ctx context.Context, input CreateOrderInput) (*queries.OrderView, error) {
	items, err := o.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	orderEntity, err := order.NewOrder(
		input.UserID,
		input.CustomerName, input.Phone, input.Address,
		order.PaymentMethod(input.PaymentMethod),
		items,
		now,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrOrderValidation)
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, createErr := tx.Orders().Create(ctx, tx.DB(), orderEntity); createErr != nil {
			return createErr
		}
		return o.enqueueOrderCreated(ctx, tx, orderEntity, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrOrderStorageFailure)
	}

	view, err := o.orders.FindByID(ctx, orderEntity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrOrderStorageFailure)
	}

	return view, nil
}

func (o *orderCommandsImpl) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	orderStatus := order.Status(status)
	if !orderStatus.IsValid() {
		return ErrInvalidOrderStatus
	}

	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, orderStatus)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrOrderNotFound
		}
		return errs.Mark(err, ErrOrderStorageFailure)
	}

	return nil
}

func (o *orderCommandsImpl) priceItems(ctx context.Context, inputs []OrderItemInput) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, in := range inputs {
		productView, err := o.products.FindByID(ctx, in.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, errs.Mark(err, ErrOrderStorageFailure)
		}
		if !productView.Available {
			return nil, ErrProductUnavailable
		}

		items = append(items, order.Item{
			ProductID:      productView.ID,
			ProductName:    productView.Name,
			UnitPriceCents: productView.PriceCents,
			Quantity:       in.Quantity,
		})
	}

	return items, nil
}

// enqueueOrderCreated queues the confirmation mail on the order's
// transaction. Guests have no account email, so only registered users
// get one. A missing recipient skips the mail, it never fails the order.
func (o *orderCommandsImpl) enqueueOrderCreated(ctx context.Context, tx shared.Tx, orderEntity *order.Order, now time.Time) error {
	if orderEntity.IsGuest() {
		return nil
	}

	email, err := tx.Users().FindEmailByID(ctx, tx.DB(), *orderEntity.UserID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("order confirmation skipped, user has no email",
				"order_id", orderEntity.ID(), "user_id", *orderEntity.UserID())
			return nil
		}
		return err
	}

	orderID := orderEntity.ID()
	job, err := notification.NewJob(
		notification.TypeOrderCreated,
		notification.ChannelEmail,
		email,
		&orderID,
		map[string]any{
			"order_id":          orderEntity.ID().String(),
			"total_price_cents": orderEntity.TotalPriceCents(),
		},
		now,
	)
	if err != nil {
		return err
	}

	return tx.Notifications().Create(ctx, tx.DB(), job)
}
