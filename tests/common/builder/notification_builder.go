package builder

import (
	"time"

	"restaurant-backend/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationJobBuilder struct {
	kind      notification.Type
	channel   notification.Channel
	recipient string
	orderID   *uuid.UUID
	variables map[string]any
	now       time.Time
}

func NewNotificationJobBuilder() *NotificationJobBuilder {
	orderID := uuid.New()
	return &NotificationJobBuilder{
		kind:      notification.TypePaymentSucceeded,
		channel:   notification.ChannelEmail,
		recipient: "customer@example.com",
		orderID:   &orderID,
		variables: map[string]any{"order_id": orderID.String()},
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *NotificationJobBuilder) With(mutate func(*NotificationJobBuilder)) *NotificationJobBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *NotificationJobBuilder) WithKind(kind notification.Type) *NotificationJobBuilder {
	b.kind = kind
	return b
}

func (b *NotificationJobBuilder) WithChannel(channel notification.Channel) *NotificationJobBuilder {
	b.channel = channel
	return b
}

func (b *NotificationJobBuilder) WithRecipient(recipient string) *NotificationJobBuilder {
	b.recipient = recipient
	return b
}

func (b *NotificationJobBuilder) WithVariables(variables map[string]any) *NotificationJobBuilder {
	b.variables = variables
	return b
}

func (b *NotificationJobBuilder) BuildDomain() (*notification.Job, error) {
	return notification.NewJob(b.kind, b.channel, b.recipient, b.orderID, b.variables, b.now)
}
