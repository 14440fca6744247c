package components

import (
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/pkg/config"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/queries"
	"restaurant-backend/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewOrderCommands,
		commands.NewProductCommands,
		commands.NewRefundCommands,
		commands.NewWebhookCommands,
		NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewOrderQueries,
		queries.NewProductQueries,
	),
)

func NewPaymentCommands(
	uow shared.UnitOfWork,
	orderRepo shared.OrderRepository,
	gateway shared.PaymentGateway,
	clk clock.Clock,
	cfg config.Config,
) commands.PaymentCommands {
	return commands.NewPaymentCommands(uow, orderRepo, gateway, clk, cfg.Stripe.PaymentTTL)
}
