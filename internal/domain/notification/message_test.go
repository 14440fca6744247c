//go:build unit

package notification_test

import (
	"testing"
	"time"

	"restaurant-backend/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRenderSubjects(t *testing.T) {
	tests := []struct {
		name string
		kind notification.Type
		want string
	}{
		{name: "payment succeeded", kind: notification.TypePaymentSucceeded, want: "Payment received"},
		{name: "refund succeeded", kind: notification.TypeRefundSucceeded, want: "Refund processed"},
		{name: "refund requested", kind: notification.TypeRefundRequested, want: "Refund requested"},
		{name: "order created", kind: notification.TypeOrderCreated, want: "Order received"},
		{name: "unknown falls back", kind: notification.Type("mystery"), want: "Notification"},
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := notification.Render(notification.ClaimedJob{Kind: tt.kind, Recipient: "c@example.com"}, now)
			assert.Equal(t, tt.want, msg.Subject)
		})
	}
}

func TestRenderBody(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orderID := uuid.MustParse("3c8f1d5e-9a2b-4c7d-8e6f-1a2b3c4d5e6f")

	t.Run("includes order id and payload when present", func(t *testing.T) {
		job := notification.ClaimedJob{
			Kind:      notification.TypePaymentSucceeded,
			Recipient: "c@example.com",
			OrderID:   &orderID,
			Payload:   []byte(`{"total_price_cents":2500}`),
		}
		msg := notification.Render(job, now)

		assert.Contains(t, msg.Body, "Notification type: payment_succeeded")
		assert.Contains(t, msg.Body, "OrderId: "+orderID.String())
		assert.Contains(t, msg.Body, "Time: 2025-06-01T12:00:00Z")
		assert.Contains(t, msg.Body, `Payload: {"total_price_cents":2500}`)
	})

	t.Run("omits order and payload lines when absent", func(t *testing.T) {
		job := notification.ClaimedJob{
			Kind:      notification.TypeOrderCreated,
			Recipient: "c@example.com",
		}
		msg := notification.Render(job, now)

		assert.NotContains(t, msg.Body, "OrderId:")
		assert.NotContains(t, msg.Body, "Payload:")
		assert.Contains(t, msg.Body, "Time: 2025-06-01T12:00:00Z")
	})

	t.Run("deterministic for equal inputs", func(t *testing.T) {
		job := notification.ClaimedJob{Kind: notification.TypeRefundSucceeded, OrderID: &orderID}
		assert.Equal(t, notification.Render(job, now), notification.Render(job, now))
	})
}
