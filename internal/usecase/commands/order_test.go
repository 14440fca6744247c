//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var orderNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type mockProductReadStore struct {
	mock.Mock
}

func (m *mockProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*queries.ProductView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductReadStore) ListAvailable(ctx context.Context) ([]*queries.ProductView, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*queries.ProductView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductReadStore) ListAll(ctx context.Context) ([]*queries.ProductView, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*queries.ProductView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrderReadStore struct {
	mock.Mock
}

func (m *mockOrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*queries.OrderView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.OrderListItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	if v, ok := args.Get(0).([]*queries.OrderListItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderReadStore) ListAll(ctx context.Context, status *string, limit, offset int32) ([]*queries.OrderListItem, error) {
	args := m.Called(ctx, status, limit, offset)
	if v, ok := args.Get(0).([]*queries.OrderListItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func productView(id uuid.UUID, name string, priceCents int64, available bool) *queries.ProductView {
	return &queries.ProductView{
		ID:         id,
		Name:       name,
		PriceCents: priceCents,
		Category:   "main",
		Available:  available,
		CreatedAt:  orderNow,
		UpdatedAt:  orderNow,
	}
}

func validInput(items ...commands.OrderItemInput) commands.CreateOrderInput {
	return commands.CreateOrderInput{
		CustomerName:  "Jamie Example",
		Phone:         "+4915112345678",
		Address:       "1 Example Street",
		PaymentMethod: "stripe",
		Items:         items,
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("prices lines from the catalog, not the request", func(t *testing.T) {
		pizzaID := uuid.New()
		colaID := uuid.New()

		uow := newFakeUoW()
		products := &mockProductReadStore{}
		orderViews := &mockOrderReadStore{}
		products.On("FindByID", mock.Anything, pizzaID).Return(productView(pizzaID, "Margherita", 1250, true), nil)
		products.On("FindByID", mock.Anything, colaID).Return(productView(colaID, "Cola", 300, true), nil)

		var createdID uuid.UUID
		uow.tx.orders.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			createdID = o.ID()
			return o.TotalPriceCents() == 2*1250+3*300
		})).Return(uuid.New(), nil)
		orderViews.On("FindByID", mock.Anything, mock.MatchedBy(func(id uuid.UUID) bool {
			return id == createdID
		})).Return(&queries.OrderView{TotalPriceCents: 3400}, nil)

		svc := commands.NewOrderCommands(uow, products, orderViews, clock.NewMockClock(orderNow))
		view, err := svc.CreateOrder(context.Background(), validInput(
			commands.OrderItemInput{ProductID: pizzaID, Quantity: 2},
			commands.OrderItemInput{ProductID: colaID, Quantity: 3},
		))
		require.NoError(t, err)

		assert.Equal(t, int64(3400), view.TotalPriceCents)
		uow.tx.orders.AssertExpectations(t)
	})

	t.Run("registered user gets a confirmation job in the same transaction", func(t *testing.T) {
		userID := uuid.New()
		pizzaID := uuid.New()

		uow := newFakeUoW()
		products := &mockProductReadStore{}
		orderViews := &mockOrderReadStore{}
		products.On("FindByID", mock.Anything, pizzaID).Return(productView(pizzaID, "Margherita", 1250, true), nil)
		uow.tx.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(uuid.New(), nil)
		uow.tx.users.On("FindEmailByID", mock.Anything, mock.Anything, userID).Return("c@example.com", nil)
		uow.tx.notifications.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(job *notification.Job) bool {
			return job.Kind() == notification.TypeOrderCreated && job.Recipient() == "c@example.com"
		})).Return(nil)
		orderViews.On("FindByID", mock.Anything, mock.Anything).Return(&queries.OrderView{}, nil)

		input := validInput(commands.OrderItemInput{ProductID: pizzaID, Quantity: 1})
		input.UserID = &userID

		svc := commands.NewOrderCommands(uow, products, orderViews, clock.NewMockClock(orderNow))
		_, err := svc.CreateOrder(context.Background(), input)
		require.NoError(t, err)
		uow.tx.notifications.AssertExpectations(t)
	})

	t.Run("guest checkout skips the confirmation job", func(t *testing.T) {
		pizzaID := uuid.New()

		uow := newFakeUoW()
		products := &mockProductReadStore{}
		orderViews := &mockOrderReadStore{}
		products.On("FindByID", mock.Anything, pizzaID).Return(productView(pizzaID, "Margherita", 1250, true), nil)
		uow.tx.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(uuid.New(), nil)
		orderViews.On("FindByID", mock.Anything, mock.Anything).Return(&queries.OrderView{}, nil)

		svc := commands.NewOrderCommands(uow, products, orderViews, clock.NewMockClock(orderNow))
		_, err := svc.CreateOrder(context.Background(), validInput(commands.OrderItemInput{ProductID: pizzaID, Quantity: 1}))
		require.NoError(t, err)

		uow.tx.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		missingID := uuid.New()
		products := &mockProductReadStore{}
		products.On("FindByID", mock.Anything, missingID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "product not found"))

		svc := commands.NewOrderCommands(newFakeUoW(), products, &mockOrderReadStore{}, clock.NewMockClock(orderNow))
		_, err := svc.CreateOrder(context.Background(), validInput(commands.OrderItemInput{ProductID: missingID, Quantity: 1}))
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})

	t.Run("unavailable product", func(t *testing.T) {
		soldOutID := uuid.New()
		products := &mockProductReadStore{}
		products.On("FindByID", mock.Anything, soldOutID).Return(productView(soldOutID, "Special", 900, false), nil)

		svc := commands.NewOrderCommands(newFakeUoW(), products, &mockOrderReadStore{}, clock.NewMockClock(orderNow))
		_, err := svc.CreateOrder(context.Background(), validInput(commands.OrderItemInput{ProductID: soldOutID, Quantity: 1}))
		assert.ErrorIs(t, err, commands.ErrProductUnavailable)
	})

	t.Run("empty order fails validation", func(t *testing.T) {
		svc := commands.NewOrderCommands(newFakeUoW(), &mockProductReadStore{}, &mockOrderReadStore{}, clock.NewMockClock(orderNow))
		_, err := svc.CreateOrder(context.Background(), validInput())
		assert.ErrorIs(t, err, commands.ErrOrderValidation)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		orderID := uuid.New()
		uow := newFakeUoW()
		uow.tx.orders.On("UpdateStatus", mock.Anything, mock.Anything, orderID, order.StatusInProgress).Return(nil)

		svc := commands.NewOrderCommands(uow, &mockProductReadStore{}, &mockOrderReadStore{}, clock.NewMockClock(orderNow))
		require.NoError(t, svc.UpdateOrderStatus(context.Background(), orderID, "in_progress"))
		uow.tx.orders.AssertExpectations(t)
	})

	t.Run("unknown status rejected before the database", func(t *testing.T) {
		uow := newFakeUoW()
		svc := commands.NewOrderCommands(uow, &mockProductReadStore{}, &mockOrderReadStore{}, clock.NewMockClock(orderNow))
		err := svc.UpdateOrderStatus(context.Background(), uuid.New(), "shipped")
		assert.ErrorIs(t, err, commands.ErrInvalidOrderStatus)
		uow.tx.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		orderID := uuid.New()
		uow := newFakeUoW()
		uow.tx.orders.On("UpdateStatus", mock.Anything, mock.Anything, orderID, order.StatusDone).
			Return(infra.NewRepoErr(infra.KindNotFound, "order not found"))

		svc := commands.NewOrderCommands(uow, &mockProductReadStore{}, &mockOrderReadStore{}, clock.NewMockClock(orderNow))
		err := svc.UpdateOrderStatus(context.Background(), orderID, "done")
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}
