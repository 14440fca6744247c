package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/usecase/shared"
)

var (
	ErrOrderNotPayable = errs.New("order not payable")
	ErrPaymentExpired  = errs.New("payment window expired")
	ErrNotCardOrder    = errs.New("order is not payable by card")
	ErrGatewayFailure  = errs.New("payment gateway failure")
)

type PaymentIntentResult struct {
	PaymentIntentID string
	ClientSecret    string
	AmountCents     int64
}

type PaymentCommands interface {
	CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (*PaymentIntentResult, error)
}

type paymentCommandsImpl struct {
	uow        shared.UnitOfWork
	orderRepo  shared.OrderRepository
	gateway    shared.PaymentGateway
	clock      clock.Clock
	paymentTTL time.Duration
}

func NewPaymentCommands(uow shared.UnitOfWork, orderRepo shared.OrderRepository, gateway shared.PaymentGateway, clk clock.Clock, paymentTTL time.Duration) PaymentCommands {
	return &paymentCommandsImpl{
		uow:        uow,
		orderRepo:  orderRepo,
		gateway:    gateway,
		clock:      clk,
		paymentTTL: paymentTTL,
	}
}

// CreatePaymentIntent creates or reuses the gateway payment intent for a
// pending order. The idempotency key is derived from the order id, so a
// retried request lands on the same gateway object even if the first
// response was lost.
func (p *paymentCommandsImpl) CreatePaymentIntent(ctx context.Context, orderID uuid.UUID) (*PaymentIntentResult, error) {
	orderEntity, err := p.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if orderEntity.PaymentMethod() != order.MethodStripe {
		return nil, ErrNotCardOrder
	}
	now := p.clock.Now()
	if !orderEntity.PayableAt(now, p.paymentTTL) {
		if orderEntity.PaymentStatus() == order.PaymentPending {
			return nil, ErrPaymentExpired
		}
		return nil, ErrOrderNotPayable
	}

	if existing := orderEntity.StripePaymentIntentID(); existing != nil && *existing != "" {
		if result, ok := p.reuseIntent(ctx, *existing); ok {
			return result, nil
		}
	}

	intent, err := p.gateway.CreatePaymentIntent(ctx, orderID.String(), orderEntity.TotalPriceCents(), paymentIntentKey(orderID))
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayFailure)
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, findErr := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if findErr != nil {
			return findErr
		}
		current.AttachPaymentIntent(intent.ID)
		return tx.Orders().UpdatePayment(ctx, tx.DB(), current)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to store payment intent id")
	}

	return &PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     intent.AmountCents,
	}, nil
}

// reuseIntent returns the existing intent when it is still confirmable.
// A canceled or succeeded intent falls through to a fresh create (the
// succeeded case is then rejected by the webhook-driven status).
func (p *paymentCommandsImpl) reuseIntent(ctx context.Context, piID string) (*PaymentIntentResult, bool) {
	intent, err := p.gateway.RetrievePaymentIntent(ctx, piID)
	if err != nil {
		slog.Warn("failed to retrieve existing payment intent", "payment_intent_id", piID, "error", err.Error())
		return nil, false
	}

	switch intent.Status {
	case "succeeded", "canceled":
		return nil, false
	default:
		return &PaymentIntentResult{
			PaymentIntentID: intent.ID,
			ClientSecret:    intent.ClientSecret,
			AmountCents:     intent.AmountCents,
		}, true
	}
}

func (p *paymentCommandsImpl) loadOrder(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	var orderEntity *order.Order
	err := p.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var findErr error
		orderEntity, findErr = p.orderRepo.FindByID(ctx, dbtx, orderID)
		return findErr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrOrderStorageFailure)
	}

	return orderEntity, nil
}

func paymentIntentKey(orderID uuid.UUID) string {
	return fmt.Sprintf("order:%s", orderID)
}
