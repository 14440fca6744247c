package bootstrap

import (
	"restaurant-backend/internal/infra/stripegw"
	"restaurant-backend/internal/pkg/config"
	"restaurant-backend/internal/usecase/shared"

	"go.uber.org/fx"
)

var StripeModule = fx.Module("stripe",
	fx.Provide(
		func(cfg config.Config) shared.PaymentGateway {
			return stripegw.NewGateway(cfg.Stripe.SecretKey)
		},
		func(cfg config.Config) shared.WebhookVerifier {
			return stripegw.NewVerifier(cfg.Stripe.WebhookSecret)
		},
	),
)
