package commands

import (
	"context"
	"encoding/json"
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

var ErrInvalidSignature = errs.New("invalid webhook signature")

const (
	eventPaymentSucceeded = "payment_intent.succeeded"
	eventPaymentFailed    = "payment_intent.payment_failed"
	eventPaymentCanceled  = "payment_intent.canceled"
	eventChargeRefunded   = "charge.refunded"
)

type WebhookCommands interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type webhookCommandsImpl struct {
	uow      shared.UnitOfWork
	verifier shared.WebhookVerifier
	clock    clock.Clock
}

func NewWebhookCommands(uow shared.UnitOfWork, verifier shared.WebhookVerifier, clk clock.Clock) WebhookCommands {
	return &webhookCommandsImpl{
		uow:      uow,
		verifier: verifier,
		clock:    clk,
	}
}

// paymentIntentEvent is the subset of the gateway payment_intent object
// the state machine needs.
type paymentIntentEvent struct {
	ID       string `json:"id"`
	Metadata struct {
		OrderID string `json:"order_id"`
	} `json:"metadata"`
}

// chargeEvent carries only the payment-intent correlation id; refunds
// are matched against the stored id, never against metadata.
type chargeEvent struct {
	PaymentIntent string `json:"payment_intent"`
}

// HandleEvent verifies and applies one gateway event. Transitions are
// idempotent: duplicate and out-of-order deliveries settle into the same
// final state, and a verified event that matches no order or carries an
// unreadable object is logged and dropped so the gateway stops
// redelivering it. Only a signature failure is reported to the caller.
func (w *webhookCommandsImpl) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := w.verifier.Verify(payload, signature)
	if err != nil {
		return errs.Mark(err, ErrInvalidSignature)
	}

	switch event.Type {
	case eventPaymentSucceeded:
		return w.handlePaymentIntent(ctx, event, func(o *order.Order, piID string, now time.Time) bool {
			return o.ApplyPaymentSucceeded(piID, now)
		}, true)
	case eventPaymentFailed:
		return w.handlePaymentIntent(ctx, event, func(o *order.Order, piID string, _ time.Time) bool {
			return o.ApplyPaymentFailed(piID)
		}, false)
	case eventPaymentCanceled:
		return w.handlePaymentIntent(ctx, event, func(o *order.Order, piID string, _ time.Time) bool {
			return o.ApplyPaymentCanceled(piID)
		}, false)
	case eventChargeRefunded:
		return w.handleChargeRefunded(ctx, event)
	default:
		slog.Debug("ignoring webhook event", "event_id", event.ID, "event_type", event.Type)
		return nil
	}
}

func (w *webhookCommandsImpl) handlePaymentIntent(
	ctx context.Context,
	event *shared.WebhookEvent,
	apply func(o *order.Order, piID string, now time.Time) bool,
	notify bool,
) error {
	var pi paymentIntentEvent
	if err := json.Unmarshal(event.Data, &pi); err != nil {
		slog.Warn("webhook event object is unreadable, dropping",
			"event_id", event.ID, "event_type", event.Type, "error", err.Error())
		return nil
	}
	orderID, err := uuid.Parse(pi.Metadata.OrderID)
	if err != nil {
		slog.Warn("webhook event carries no usable order id, dropping",
			"event_id", event.ID, "event_type", event.Type, "payment_intent_id", pi.ID)
		return nil
	}

	now := w.clock.Now()
	return w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orderEntity, findErr := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				slog.Warn("webhook event matches no order, dropping",
					"event_id", event.ID, "event_type", event.Type, "order_id", orderID)
				return nil
			}
			return findErr
		}

		if orderEntity.PaymentIntentMismatch(pi.ID) {
			slog.Warn("payment intent id mismatch, overwriting with event id",
				"order_id", orderID,
				"stored_payment_intent_id", *orderEntity.StripePaymentIntentID(),
				"event_payment_intent_id", pi.ID)
		}

		if !apply(orderEntity, pi.ID, now) {
			slog.Info("stale or duplicate webhook event ignored",
				"event_id", event.ID, "event_type", event.Type,
				"order_id", orderID, "payment_status", orderEntity.PaymentStatus().String())
			return nil
		}

		if updateErr := tx.Orders().UpdatePayment(ctx, tx.DB(), orderEntity); updateErr != nil {
			return updateErr
		}

		if notify {
			return w.enqueue(ctx, tx, orderEntity, notification.TypePaymentSucceeded, now)
		}
		return nil
	})
}

func (w *webhookCommandsImpl) handleChargeRefunded(ctx context.Context, event *shared.WebhookEvent) error {
	var charge chargeEvent
	if err := json.Unmarshal(event.Data, &charge); err != nil {
		slog.Warn("charge.refunded object is unreadable, dropping",
			"event_id", event.ID, "error", err.Error())
		return nil
	}
	if charge.PaymentIntent == "" {
		slog.Warn("charge.refunded without payment intent id, dropping", "event_id", event.ID)
		return nil
	}

	now := w.clock.Now()
	return w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orderEntity, findErr := tx.Orders().FindByPaymentIntentID(ctx, tx.DB(), charge.PaymentIntent)
		if findErr != nil {
			if infra.IsKind(findErr, infra.KindNotFound) {
				slog.Warn("charge.refunded matches no order, dropping",
					"event_id", event.ID, "payment_intent_id", charge.PaymentIntent)
				return nil
			}
			return findErr
		}

		if !orderEntity.ApplyRefundSucceeded(now) {
			slog.Info("duplicate charge.refunded ignored",
				"event_id", event.ID, "order_id", orderEntity.ID())
			return nil
		}

		if updateErr := tx.Orders().UpdatePayment(ctx, tx.DB(), orderEntity); updateErr != nil {
			return updateErr
		}

		return w.enqueue(ctx, tx, orderEntity, notification.TypeRefundSucceeded, now)
	})
}

// enqueue adds the customer mail in the same transaction as the state
// change, so a crash between the two can never lose the notification.
func (w *webhookCommandsImpl) enqueue(ctx context.Context, tx shared.Tx, orderEntity *order.Order, kind notification.Type, now time.Time) error {
	if orderEntity.IsGuest() {
		return nil
	}

	email, err := tx.Users().FindEmailByID(ctx, tx.DB(), *orderEntity.UserID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("notification skipped, user has no email",
				"order_id", orderEntity.ID(), "type", kind.String())
			return nil
		}
		return err
	}

	orderID := orderEntity.ID()
	job, err := notification.NewJob(kind, notification.ChannelEmail, email, &orderID,
		map[string]any{
			"order_id":          orderID.String(),
			"total_price_cents": orderEntity.TotalPriceCents(),
		},
		now,
	)
	if err != nil {
		return err
	}

	return tx.Notifications().Create(ctx, tx.DB(), job)
}
