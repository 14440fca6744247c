package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-side view models. These are query results only, never written
// back through the repositories.

type AuthorizedUser struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Category    string    `json:"category"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderItemView struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int32     `json:"quantity"`
}

type OrderView struct {
	ID                    uuid.UUID       `json:"id"`
	UserID                *uuid.UUID      `json:"user_id,omitempty"`
	CustomerName          string          `json:"customer_name"`
	Phone                 string          `json:"phone"`
	Address               string          `json:"address"`
	Items                 []OrderItemView `json:"items"`
	TotalPriceCents       int64           `json:"total_price_cents"`
	PaymentMethod         string          `json:"payment_method"`
	PaymentStatus         string          `json:"payment_status"`
	OrderStatus           string          `json:"order_status"`
	StripePaymentIntentID *string         `json:"stripe_payment_intent_id,omitempty"`
	StripeRefundID        *string         `json:"stripe_refund_id,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	PaidAt                *time.Time      `json:"paid_at,omitempty"`
	RefundRequestedAt     *time.Time      `json:"refund_requested_at,omitempty"`
	RefundedAt            *time.Time      `json:"refunded_at,omitempty"`
}

type OrderListItem struct {
	ID              uuid.UUID `json:"id"`
	CustomerName    string    `json:"customer_name"`
	TotalPriceCents int64     `json:"total_price_cents"`
	PaymentStatus   string    `json:"payment_status"`
	OrderStatus     string    `json:"order_status"`
	CreatedAt       time.Time `json:"created_at"`
}

type NotificationJobView struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	Channel       string     `json:"channel"`
	Recipient     string     `json:"recipient"`
	OrderID       *uuid.UUID `json:"order_id,omitempty"`
	Status        string     `json:"status"`
	Attempts      int32      `json:"attempts"`
	NextAttemptAt *time.Time `json:"next_attempt_at,omitempty"`
	LastError     *string    `json:"last_error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
}
