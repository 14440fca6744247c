package shared

import (
	"context"
	"time"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/domain/product"
	"restaurant-backend/internal/domain/user"
	"restaurant-backend/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Orders() OrderRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Products() ProductRepository
	DB() db.DBTX
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	FindByPaymentIntentID(ctx context.Context, tx db.DBTX, piID string) (*order.Order, error)
	UpdatePayment(ctx context.Context, tx db.DBTX, o *order.Order) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, job *notification.Job) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, id uuid.UUID, email user.Email, passwordHash, name string, role user.Role) (uuid.UUID, error)
	FindEmailByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (string, error)
}

type ProductRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *product.Product) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, p *product.Product) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

// JobQueue is the dispatch worker's view of the notification store. Claim
// and settle run on the pool outside any caller transaction.
type JobQueue interface {
	ClaimDueBatch(ctx context.Context, now time.Time, stuckBefore time.Time, limit int32) ([]notification.ClaimedJob, error)
	MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, sendErr string, now time.Time) error
}
