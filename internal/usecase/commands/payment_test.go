//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/shared"
	"restaurant-backend/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const paymentTTL = 30 * time.Minute

// orders are built with a fixed creation time, so the clock starts just
// after it to stay inside the payment window
var paymentNow = time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)

func newPaymentCommands(uow *fakeUoW, gateway *mockGateway) commands.PaymentCommands {
	return commands.NewPaymentCommands(uow, uow.tx.orders, gateway, clock.NewMockClock(paymentNow), paymentTTL)
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("creates intent with order-scoped idempotency key", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("CreatePaymentIntent", mock.Anything, o.ID().String(), int64(2500), "order:"+o.ID().String()).
			Return(&shared.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret", AmountCents: 2500}, nil)
		uow.tx.orders.On("UpdatePayment", mock.Anything, mock.Anything, mock.MatchedBy(func(current *order.Order) bool {
			return current.StripePaymentIntentID() != nil && *current.StripePaymentIntentID() == "pi_123"
		})).Return(nil)

		svc := newPaymentCommands(uow, gateway)
		result, err := svc.CreatePaymentIntent(context.Background(), o.ID())
		require.NoError(t, err)

		assert.Equal(t, "pi_123", result.PaymentIntentID)
		assert.Equal(t, "pi_123_secret", result.ClientSecret)
		assert.Equal(t, int64(2500), result.AmountCents)
		gateway.AssertExpectations(t)
		uow.tx.orders.AssertExpectations(t)
	})

	t.Run("reuses a still-confirmable intent", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		o.AttachPaymentIntent("pi_old")

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("RetrievePaymentIntent", mock.Anything, "pi_old").
			Return(&shared.PaymentIntent{ID: "pi_old", ClientSecret: "pi_old_secret", Status: "requires_payment_method", AmountCents: 2500}, nil)

		svc := newPaymentCommands(uow, gateway)
		result, err := svc.CreatePaymentIntent(context.Background(), o.ID())
		require.NoError(t, err)

		assert.Equal(t, "pi_old", result.PaymentIntentID)
		gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("canceled existing intent falls through to a fresh create", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		o.AttachPaymentIntent("pi_old")

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("RetrievePaymentIntent", mock.Anything, "pi_old").
			Return(&shared.PaymentIntent{ID: "pi_old", Status: "canceled"}, nil)
		gateway.On("CreatePaymentIntent", mock.Anything, o.ID().String(), int64(2500), "order:"+o.ID().String()).
			Return(&shared.PaymentIntent{ID: "pi_new", ClientSecret: "pi_new_secret", AmountCents: 2500}, nil)
		uow.tx.orders.On("UpdatePayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := newPaymentCommands(uow, gateway)
		result, err := svc.CreatePaymentIntent(context.Background(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, "pi_new", result.PaymentIntentID)
	})

	t.Run("cash order is rejected", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().WithPaymentMethod(order.MethodCash).BuildDomain()
		require.NoError(t, err)

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newPaymentCommands(uow, &mockGateway{})
		_, err = svc.CreatePaymentIntent(context.Background(), o.ID())
		assert.ErrorIs(t, err, commands.ErrNotCardOrder)
	})

	t.Run("expired payment window", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().
			WithCreatedAt(paymentNow.Add(-paymentTTL - time.Minute)).
			BuildDomain()
		require.NoError(t, err)

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newPaymentCommands(uow, &mockGateway{})
		_, err = svc.CreatePaymentIntent(context.Background(), o.ID())
		assert.ErrorIs(t, err, commands.ErrPaymentExpired)
	})

	t.Run("already paid order is not payable", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.True(t, o.ApplyPaymentSucceeded("pi_123", paymentNow))

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newPaymentCommands(uow, &mockGateway{})
		_, err = svc.CreatePaymentIntent(context.Background(), o.ID())
		assert.ErrorIs(t, err, commands.ErrOrderNotPayable)
	})

	t.Run("unknown order", func(t *testing.T) {
		orderID := uuid.New()
		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, orderID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "order not found"))

		svc := newPaymentCommands(uow, &mockGateway{})
		_, err := svc.CreatePaymentIntent(context.Background(), orderID)
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})

	t.Run("gateway failure is marked", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		svc := newPaymentCommands(uow, gateway)
		_, err = svc.CreatePaymentIntent(context.Background(), o.ID())
		assert.ErrorIs(t, err, commands.ErrGatewayFailure)
	})
}
