package builder

import (
	"time"

	"restaurant-backend/internal/domain/order"

	"github.com/google/uuid"
)

// OrderBuilder assembles valid orders for tests; mutate single fields to
// probe validation and transitions.
type OrderBuilder struct {
	userID        *uuid.UUID
	customerName  string
	phone         string
	address       string
	paymentMethod order.PaymentMethod
	items         []order.Item
	now           time.Time
}

func NewOrderBuilder() *OrderBuilder {
	productID := uuid.New()
	return &OrderBuilder{
		customerName:  "Jamie Example",
		phone:         "+4915112345678",
		address:       "1 Example Street",
		paymentMethod: order.MethodStripe,
		items: []order.Item{
			{ProductID: productID, ProductName: "Margherita", UnitPriceCents: 1250, Quantity: 2},
		},
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *OrderBuilder) WithUser(id uuid.UUID) *OrderBuilder {
	b.userID = &id
	return b
}

func (b *OrderBuilder) WithCustomerName(name string) *OrderBuilder {
	b.customerName = name
	return b
}

func (b *OrderBuilder) WithAddress(address string) *OrderBuilder {
	b.address = address
	return b
}

func (b *OrderBuilder) WithPaymentMethod(method order.PaymentMethod) *OrderBuilder {
	b.paymentMethod = method
	return b
}

func (b *OrderBuilder) WithItems(items ...order.Item) *OrderBuilder {
	b.items = items
	return b
}

func (b *OrderBuilder) WithCreatedAt(t time.Time) *OrderBuilder {
	b.now = t
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(b.userID, b.customerName, b.phone, b.address, b.paymentMethod, b.items, b.now)
}
