//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant-backend/internal/domain/notification"
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

var refundNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func paidOrder(t *testing.T, userID *uuid.UUID) *order.Order {
	t.Helper()
	b := builder.NewOrderBuilder()
	if userID != nil {
		b = b.WithUser(*userID)
	}
	o, err := b.BuildDomain()
	require.NoError(t, err)
	require.True(t, o.ApplyPaymentSucceeded("pi_123", refundNow.Add(-time.Hour)))
	return o
}

func newRefundCommands(uow *fakeUoW, gateway *mockGateway) commands.RefundCommands {
	return commands.NewRefundCommands(uow, gateway, clock.NewMockClock(refundNow))
}

func TestRefundOrder(t *testing.T) {
	t.Run("full refund records id and enqueues customer mail", func(t *testing.T) {
		userID := uuid.New()
		o := paidOrder(t, &userID)

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("CreateRefund", mock.Anything, "pi_123", (*int64)(nil), "refund:order:"+o.ID().String()+":full").
			Return(&shared.Refund{ID: "re_123", Status: "pending"}, nil)
		uow.tx.orders.On("UpdatePayment", mock.Anything, mock.Anything, o).Return(nil)
		uow.tx.users.On("FindEmailByID", mock.Anything, mock.Anything, userID).Return("c@example.com", nil)
		uow.tx.notifications.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(job *notification.Job) bool {
			return job.Kind() == notification.TypeRefundRequested
		})).Return(nil)

		svc := newRefundCommands(uow, gateway)
		result, err := svc.RefundOrder(context.Background(), o.ID(), nil)
		require.NoError(t, err)

		assert.Equal(t, "re_123", result.RefundID)
		assert.Equal(t, "pending", result.Status)
		// status flips to refunded only on the charge.refunded webhook
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		require.NotNil(t, o.StripeRefundID())
		assert.Equal(t, "re_123", *o.StripeRefundID())
		require.NotNil(t, o.RefundRequestedAt())
		assert.Equal(t, refundNow, *o.RefundRequestedAt())
		gateway.AssertExpectations(t)
		uow.tx.notifications.AssertExpectations(t)
	})

	t.Run("partial refund keys on the amount", func(t *testing.T) {
		o := paidOrder(t, nil)
		amount := int64(1000)

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("CreateRefund", mock.Anything, "pi_123", &amount, "refund:order:"+o.ID().String()+":partial:1000").
			Return(&shared.Refund{ID: "re_456", Status: "succeeded"}, nil)
		uow.tx.orders.On("UpdatePayment", mock.Anything, mock.Anything, o).Return(nil)

		svc := newRefundCommands(uow, gateway)
		result, err := svc.RefundOrder(context.Background(), o.ID(), &amount)
		require.NoError(t, err)
		assert.Equal(t, "re_456", result.RefundID)
	})

	t.Run("amount above the order total is rejected before the gateway", func(t *testing.T) {
		o := paidOrder(t, nil)
		amount := int64(99999)

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newRefundCommands(uow, gateway)
		_, err := svc.RefundOrder(context.Background(), o.ID(), &amount)
		assert.ErrorIs(t, err, commands.ErrInvalidRefundAmount)
		gateway.AssertNotCalled(t, "CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		o := paidOrder(t, nil)
		amount := int64(0)

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newRefundCommands(uow, &mockGateway{})
		_, err := svc.RefundOrder(context.Background(), o.ID(), &amount)
		assert.ErrorIs(t, err, commands.ErrInvalidRefundAmount)
	})

	t.Run("unpaid order is not refundable", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newRefundCommands(uow, &mockGateway{})
		_, err = svc.RefundOrder(context.Background(), o.ID(), nil)
		assert.ErrorIs(t, err, commands.ErrOrderNotRefundable)
	})

	t.Run("already refunded order", func(t *testing.T) {
		o := paidOrder(t, nil)
		require.True(t, o.ApplyRefundSucceeded(refundNow))

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newRefundCommands(uow, &mockGateway{})
		_, err := svc.RefundOrder(context.Background(), o.ID(), nil)
		assert.ErrorIs(t, err, commands.ErrOrderAlreadyRefunded)
	})

	t.Run("paid order without an intent id is not refundable", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().WithPaymentMethod(order.MethodCash).BuildDomain()
		require.NoError(t, err)
		require.True(t, o.ApplyPaymentSucceeded("", refundNow))

		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)

		svc := newRefundCommands(uow, &mockGateway{})
		_, err = svc.RefundOrder(context.Background(), o.ID(), nil)
		assert.ErrorIs(t, err, commands.ErrOrderNotRefundable)
	})

	t.Run("unknown order", func(t *testing.T) {
		orderID := uuid.New()
		uow := newFakeUoW()
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, orderID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "order not found"))

		svc := newRefundCommands(uow, &mockGateway{})
		_, err := svc.RefundOrder(context.Background(), orderID, nil)
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})

	t.Run("gateway failure is marked", func(t *testing.T) {
		o := paidOrder(t, nil)

		uow := newFakeUoW()
		gateway := &mockGateway{}
		uow.tx.orders.On("FindByID", mock.Anything, mock.Anything, o.ID()).Return(o, nil)
		gateway.On("CreateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		svc := newRefundCommands(uow, gateway)
		_, err := svc.RefundOrder(context.Background(), o.ID(), nil)
		assert.ErrorIs(t, err, commands.ErrGatewayFailure)
	})
}
