package components

import (
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/infra/readstore"
	"restaurant-backend/internal/infra/repository"
	"restaurant-backend/internal/infra/uow"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/queries"
	"restaurant-backend/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		// Pool-backed repositories for use outside the unit of work
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(shared.OrderRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(shared.JobQueue)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.LastLoginUpdater)),
		),
		// Read stores
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(commands.OrderReadStore)),
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(commands.ProductReadStore)),
			fx.As(new(queries.ProductReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.UserReadStore)),
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
