package stripegw

import (
	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/usecase/shared"

	"github.com/stripe/stripe-go/v82/webhook"
)

// Verifier authenticates webhook payloads with the endpoint's signing
// secret.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(payload []byte, signature string) (*shared.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Wrap(err, "webhook signature verification failed")
	}

	return &shared.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
		Data: event.Data.Raw,
	}, nil
}
