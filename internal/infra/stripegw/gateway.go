package stripegw

import (
	"context"

	"restaurant-backend/internal/pkg/errs"
	"restaurant-backend/internal/usecase/shared"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Gateway wraps the Stripe client behind the application's payment port.
type Gateway struct {
	api *client.API
}

func NewGateway(secretKey string) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Gateway{api: api}
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, orderID string, amountCents int64, idempotencyKey string) (*shared.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", orderID)
	params.SetIdempotencyKey(idempotencyKey)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create payment intent")
	}

	return toPaymentIntent(pi), nil
}

func (g *Gateway) RetrievePaymentIntent(ctx context.Context, id string) (*shared.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to retrieve payment intent")
	}

	return toPaymentIntent(pi), nil
}

// CreateRefund issues a full refund when amountCents is nil, otherwise a
// partial refund of the given amount.
func (g *Gateway) CreateRefund(ctx context.Context, paymentIntentID string, amountCents *int64, idempotencyKey string) (*shared.Refund, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	}
	if amountCents != nil {
		params.Amount = stripe.Int64(*amountCents)
	}
	params.SetIdempotencyKey(idempotencyKey)

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create refund")
	}

	return &shared.Refund{
		ID:     refund.ID,
		Status: string(refund.Status),
	}, nil
}

func toPaymentIntent(pi *stripe.PaymentIntent) *shared.PaymentIntent {
	return &shared.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
	}
}
