package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/usecase/shared"
)

var (
	ErrOrderNotRefundable   = errs.New("order not refundable")
	ErrInvalidRefundAmount  = errs.New("invalid refund amount")
	ErrOrderAlreadyRefunded = errs.New("order already refunded")
)

type RefundResult struct {
	RefundID string
	Status   string
}

type RefundCommands interface {
	RefundOrder(ctx context.Context, orderID uuid.UUID, amountCents *int64) (*RefundResult, error)
}

type refundCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway shared.PaymentGateway
	clock   clock.Clock
}

func NewRefundCommands(uow shared.UnitOfWork, gateway shared.PaymentGateway, clk clock.Clock) RefundCommands {
	return &refundCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clk,
	}
}

// RefundOrder issues a gateway refund for a paid order. nil amountCents
// means a full refund. The order stays paid until the gateway confirms
// via charge.refunded; only the refund id and request time are recorded
// here.
func (r *refundCommandsImpl) RefundOrder(ctx context.Context, orderID uuid.UUID, amountCents *int64) (*RefundResult, error) {
	var (
		piID  string
		total int64
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orderEntity, findErr := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if findErr != nil {
			return findErr
		}

		switch orderEntity.PaymentStatus() {
		case order.PaymentRefunded:
			return ErrOrderAlreadyRefunded
		case order.PaymentPaid:
			// refundable
		default:
			return ErrOrderNotRefundable
		}
		if orderEntity.StripePaymentIntentID() == nil || *orderEntity.StripePaymentIntentID() == "" {
			return ErrOrderNotRefundable
		}

		piID = *orderEntity.StripePaymentIntentID()
		total = orderEntity.TotalPriceCents()
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if amountCents != nil && (*amountCents <= 0 || *amountCents > total) {
		return nil, ErrInvalidRefundAmount
	}

	refund, err := r.gateway.CreateRefund(ctx, piID, amountCents, refundKey(orderID, amountCents))
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayFailure)
	}

	now := r.clock.Now()
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orderEntity, findErr := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if findErr != nil {
			return findErr
		}

		orderEntity.AttachRefund(refund.ID, now)
		if updateErr := tx.Orders().UpdatePayment(ctx, tx.DB(), orderEntity); updateErr != nil {
			return updateErr
		}

		return r.enqueueRefundRequested(ctx, tx, orderEntity, now)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to record refund request")
	}

	return &RefundResult{
		RefundID: refund.ID,
		Status:   refund.Status,
	}, nil
}

func (r *refundCommandsImpl) enqueueRefundRequested(ctx context.Context, tx shared.Tx, orderEntity *order.Order, now time.Time) error {
	if orderEntity.IsGuest() {
		return nil
	}

	email, err := tx.Users().FindEmailByID(ctx, tx.DB(), *orderEntity.UserID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("refund notification skipped, user has no email",
				"order_id", orderEntity.ID(), "user_id", *orderEntity.UserID())
			return nil
		}
		return err
	}

	orderID := orderEntity.ID()
	job, err := notification.NewJob(
		notification.TypeRefundRequested,
		notification.ChannelEmail,
		email,
		&orderID,
		map[string]any{
			"order_id": orderID.String(),
		},
		now,
	)
	if err != nil {
		return err
	}

	return tx.Notifications().Create(ctx, tx.DB(), job)
}

func refundKey(orderID uuid.UUID, amountCents *int64) string {
	if amountCents == nil {
		return fmt.Sprintf("refund:order:%s:full", orderID)
	}
	return fmt.Sprintf("refund:order:%s:partial:%d", orderID, *amountCents)
}
