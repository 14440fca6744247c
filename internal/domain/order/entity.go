package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ProductID      uuid.UUID
	ProductName    string
	UnitPriceCents int64
	Quantity       int32
}

func (i Item) LineTotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Order is a storefront order. The payment status field is driven by
// verified gateway webhook events only; the API layer never sets paid or
// refunded directly.
type Order struct {
	id                    uuid.UUID
	userID                *uuid.UUID // nil => guest order
	customerName          string
	phone                 string
	address               string
	items                 []Item
	totalPriceCents       int64
	paymentMethod         PaymentMethod
	paymentStatus         PaymentStatus
	status                Status
	stripePaymentIntentID *string
	stripeRefundID        *string
	createdAt             time.Time
	paidAt                *time.Time
	refundRequestedAt     *time.Time
	refundedAt            *time.Time
}

func NewOrder(userID *uuid.UUID, customerName, phone, address string, method PaymentMethod, items []Item, now time.Time) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomerName
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total += item.LineTotalCents()
	}

	return &Order{
		id:              uuid.New(),
		userID:          userID,
		customerName:    customerName,
		phone:           phone,
		address:         address,
		items:           items,
		totalPriceCents: total,
		paymentMethod:   method,
		paymentStatus:   PaymentPending,
		status:          StatusNew,
		createdAt:       now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	userID *uuid.UUID,
	customerName, phone, address string,
	items []Item,
	totalPriceCents int64,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	status Status,
	stripePaymentIntentID, stripeRefundID *string,
	createdAt time.Time,
	paidAt, refundRequestedAt, refundedAt *time.Time,
) *Order {
	return &Order{
		id:                    id,
		userID:                userID,
		customerName:          customerName,
		phone:                 phone,
		address:               address,
		items:                 items,
		totalPriceCents:       totalPriceCents,
		paymentMethod:         method,
		paymentStatus:         paymentStatus,
		status:                status,
		stripePaymentIntentID: stripePaymentIntentID,
		stripeRefundID:        stripeRefundID,
		createdAt:             createdAt,
		paidAt:                paidAt,
		refundRequestedAt:     refundRequestedAt,
		refundedAt:            refundedAt,
	}
}

func (o *Order) ID() uuid.UUID                  { return o.id }
func (o *Order) UserID() *uuid.UUID             { return o.userID }
func (o *Order) CustomerName() string           { return o.customerName }
func (o *Order) Phone() string                  { return o.phone }
func (o *Order) Address() string                { return o.address }
func (o *Order) Items() []Item                  { return o.items }
func (o *Order) TotalPriceCents() int64         { return o.totalPriceCents }
func (o *Order) PaymentMethod() PaymentMethod   { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus   { return o.paymentStatus }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) StripePaymentIntentID() *string { return o.stripePaymentIntentID }
func (o *Order) StripeRefundID() *string        { return o.stripeRefundID }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) PaidAt() *time.Time             { return o.paidAt }
func (o *Order) RefundRequestedAt() *time.Time  { return o.refundRequestedAt }
func (o *Order) RefundedAt() *time.Time         { return o.refundedAt }

func (o *Order) IsGuest() bool {
	return o.userID == nil
}

// PaymentIntentMismatch reports whether the stored payment-intent id
// disagrees with the incoming one. A mismatch is logged by the caller but
// does not block the transition: the incoming id overwrites.
func (o *Order) PaymentIntentMismatch(piID string) bool {
	return o.stripePaymentIntentID != nil && *o.stripePaymentIntentID != "" &&
		piID != "" && *o.stripePaymentIntentID != piID
}

// ApplyPaymentSucceeded transitions to paid. Returns false when the event
// is stale or a duplicate: refunded is terminal, and a second succeeded
// event against a paid order must not move paidAt.
func (o *Order) ApplyPaymentSucceeded(piID string, now time.Time) bool {
	if o.paymentStatus == PaymentRefunded {
		return false
	}
	if o.paymentStatus == PaymentPaid {
		return false
	}

	o.paymentStatus = PaymentPaid
	paidAt := now
	o.paidAt = &paidAt
	o.stripePaymentIntentID = &piID
	return true
}

// ApplyPaymentFailed handles payment_intent.payment_failed. A failed
// event arriving after success is stale and ignored.
func (o *Order) ApplyPaymentFailed(piID string) bool {
	if o.paymentStatus == PaymentRefunded || o.paymentStatus == PaymentPaid {
		return false
	}

	o.paymentStatus = PaymentFailed
	o.stripePaymentIntentID = &piID
	return true
}

// ApplyPaymentCanceled handles payment_intent.canceled with the same
// staleness rules as ApplyPaymentFailed.
func (o *Order) ApplyPaymentCanceled(piID string) bool {
	if o.paymentStatus == PaymentRefunded || o.paymentStatus == PaymentPaid {
		return false
	}

	o.paymentStatus = PaymentCanceled
	o.stripePaymentIntentID = &piID
	return true
}

// ApplyRefundSucceeded transitions paid -> refunded. Duplicate
// charge.refunded events are ignored once refunded.
func (o *Order) ApplyRefundSucceeded(now time.Time) bool {
	if o.paymentStatus == PaymentRefunded {
		return false
	}

	o.paymentStatus = PaymentRefunded
	refundedAt := now
	o.refundedAt = &refundedAt
	return true
}

// AttachPaymentIntent stores the gateway correlation id at intent
// creation time.
func (o *Order) AttachPaymentIntent(piID string) {
	o.stripePaymentIntentID = &piID
}

// AttachRefund records the refund id and request time. Refunded status
// itself is only set by the webhook (source of truth).
func (o *Order) AttachRefund(refundID string, now time.Time) {
	o.stripeRefundID = &refundID
	requestedAt := now
	o.refundRequestedAt = &requestedAt
}

func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidOrderStatus
	}
	o.status = status
	return nil
}

// PayableAt reports whether a payment intent may be created: only pending
// orders within the TTL window and with a positive total.
func (o *Order) PayableAt(now time.Time, ttl time.Duration) bool {
	if o.paymentStatus != PaymentPending {
		return false
	}
	if o.totalPriceCents <= 0 {
		return false
	}
	return !o.createdAt.Before(now.Add(-ttl))
}
