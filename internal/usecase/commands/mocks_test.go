//go:build unit

package commands_test

import (
	"context"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/domain/product"
	"restaurant-backend/internal/domain/user"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeUoW runs the transactional closure directly against the mock
// repositories, without a database.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: &fakeTx{
		orders:        &mockOrderRepo{},
		notifications: &mockNotificationRepo{},
		users:         &mockUserRepo{},
		products:      &mockProductRepo{},
	}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	orders        *mockOrderRepo
	notifications *mockNotificationRepo
	users         *mockUserRepo
	products      *mockProductRepo
}

func (t *fakeTx) Orders() shared.OrderRepository               { return t.orders }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *fakeTx) Users() shared.UserRepository                 { return t.users }
func (t *fakeTx) Products() shared.ProductRepository           { return t.products }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	args := m.Called(ctx, tx, o)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, tx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) FindByPaymentIntentID(ctx context.Context, tx db.DBTX, piID string) (*order.Order, error) {
	args := m.Called(ctx, tx, piID)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) UpdatePayment(ctx context.Context, tx db.DBTX, o *order.Order) error {
	return m.Called(ctx, tx, o).Error(0)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status) error {
	return m.Called(ctx, tx, id, status).Error(0)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, tx db.DBTX, job *notification.Job) error {
	return m.Called(ctx, tx, job).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, tx db.DBTX, id uuid.UUID, email user.Email, passwordHash, name string, role user.Role) (uuid.UUID, error) {
	args := m.Called(ctx, tx, id, email, passwordHash, name, role)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockUserRepo) FindEmailByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (string, error) {
	args := m.Called(ctx, tx, id)
	return args.String(0), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, tx db.DBTX, p *product.Product) (uuid.UUID, error) {
	args := m.Called(ctx, tx, p)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, tx db.DBTX, p *product.Product) error {
	return m.Called(ctx, tx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	return m.Called(ctx, tx, id).Error(0)
}

// fakeVerifier returns a canned event or error without checking the
// signature.
type fakeVerifier struct {
	event *shared.WebhookEvent
	err   error
}

func (v *fakeVerifier) Verify(payload []byte, signature string) (*shared.WebhookEvent, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.event, nil
}

// mockGateway stands in for the payment provider client.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePaymentIntent(ctx context.Context, orderID string, amountCents int64, idempotencyKey string) (*shared.PaymentIntent, error) {
	args := m.Called(ctx, orderID, amountCents, idempotencyKey)
	if pi, ok := args.Get(0).(*shared.PaymentIntent); ok {
		return pi, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) RetrievePaymentIntent(ctx context.Context, id string) (*shared.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if pi, ok := args.Get(0).(*shared.PaymentIntent); ok {
		return pi, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) CreateRefund(ctx context.Context, piID string, amountCents *int64, idempotencyKey string) (*shared.Refund, error) {
	args := m.Called(ctx, piID, amountCents, idempotencyKey)
	if r, ok := args.Get(0).(*shared.Refund); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
