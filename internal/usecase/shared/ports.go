package shared

import (
	"context"
)

// PaymentIntent mirrors the gateway-side payment object fields the
// application reads. Amounts are integer cents.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
}

type Refund struct {
	ID     string
	Status string
}

// PaymentGateway abstracts the card processor. Idempotency keys are
// supplied by the caller so retried requests collapse server-side.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, orderID string, amountCents int64, idempotencyKey string) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	CreateRefund(ctx context.Context, paymentIntentID string, amountCents *int64, idempotencyKey string) (*Refund, error)
}

// WebhookEvent is a verified gateway event. Data holds the raw JSON of
// the event's inner object.
type WebhookEvent struct {
	ID   string
	Type string
	Data []byte
}

// WebhookVerifier checks the gateway signature over the raw request body
// and rejects anything it cannot authenticate.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) (*WebhookEvent, error)
}
