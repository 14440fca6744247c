package repository

import (
	"context"

	"restaurant-backend/internal/domain/order"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(pool db.DBTX) *OrderRepository {
	return &OrderRepository{db: pool}
}

const createOrderSQL = `
INSERT INTO orders (
	id, user_id, customer_name, phone, address, total_price_cents,
	payment_method, payment_status, order_status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

const createOrderItemSQL = `
INSERT INTO order_items (order_id, product_id, product_name, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
`

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, createOrderSQL,
		o.ID(),
		pgconv.UUIDPtrToPgtype(o.UserID()),
		o.CustomerName(),
		o.Phone(),
		o.Address(),
		o.TotalPriceCents(),
		string(o.PaymentMethod()),
		o.PaymentStatus().String(),
		o.Status().String(),
		pgconv.TimeToPgtype(o.CreatedAt()),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	for _, item := range o.Items() {
		_, err := tx.Exec(ctx, createOrderItemSQL,
			o.ID(), item.ProductID, item.ProductName, item.UnitPriceCents, item.Quantity)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return o.ID(), nil
}

const selectOrderSQL = `
SELECT id, user_id, customer_name, phone, address, total_price_cents,
       payment_method, payment_status, order_status,
       stripe_payment_intent_id, stripe_refund_id,
       created_at, paid_at, refund_requested_at, refunded_at
FROM orders
`

func (r *OrderRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	return r.scanOrder(ctx, tx, selectOrderSQL+" WHERE id = $1", id)
}

// FindByPaymentIntentID resolves the order for a charge.refunded event,
// which carries only the gateway correlation id.
func (r *OrderRepository) FindByPaymentIntentID(ctx context.Context, tx db.DBTX, piID string) (*order.Order, error) {
	return r.scanOrder(ctx, tx, selectOrderSQL+" WHERE stripe_payment_intent_id = $1", piID)
}

const selectOrderItemsSQL = `
SELECT product_id, product_name, unit_price_cents, quantity
FROM order_items
WHERE order_id = $1
`

func (r *OrderRepository) scanOrder(ctx context.Context, tx db.DBTX, query string, arg any) (*order.Order, error) {
	var (
		id                uuid.UUID
		userID            pgtype.UUID
		customerName      string
		phone             string
		address           string
		totalPriceCents   int64
		paymentMethod     string
		paymentStatus     string
		orderStatus       string
		piID              pgtype.Text
		refundID          pgtype.Text
		createdAt         pgtype.Timestamptz
		paidAt            pgtype.Timestamptz
		refundRequestedAt pgtype.Timestamptz
		refundedAt        pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, query, arg).Scan(
		&id, &userID, &customerName, &phone, &address, &totalPriceCents,
		&paymentMethod, &paymentStatus, &orderStatus,
		&piID, &refundID,
		&createdAt, &paidAt, &refundRequestedAt, &refundedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "order not found")
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := r.loadItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	return order.ReconstructOrder(
		id,
		pgconv.UUIDPtrFromPgtype(userID),
		customerName, phone, address,
		items,
		totalPriceCents,
		order.PaymentMethod(paymentMethod),
		order.PaymentStatus(paymentStatus),
		order.Status(orderStatus),
		pgconv.StringPtrFromPgtype(piID),
		pgconv.StringPtrFromPgtype(refundID),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimePtrFromPgtype(paidAt),
		pgconv.TimePtrFromPgtype(refundRequestedAt),
		pgconv.TimePtrFromPgtype(refundedAt),
	), nil
}

func (r *OrderRepository) loadItems(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]order.Item, error) {
	rows, err := tx.Query(ctx, selectOrderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.UnitPriceCents, &item.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}

	return items, nil
}

const updateOrderPaymentSQL = `
UPDATE orders
SET payment_status = $2,
    stripe_payment_intent_id = $3,
    stripe_refund_id = $4,
    paid_at = $5,
    refund_requested_at = $6,
    refunded_at = $7
WHERE id = $1
`

// UpdatePayment persists the payment-side fields mutated by the state
// machine (status, correlation ids, timestamps).
func (r *OrderRepository) UpdatePayment(ctx context.Context, tx db.DBTX, o *order.Order) error {
	_, err := tx.Exec(ctx, updateOrderPaymentSQL,
		o.ID(),
		o.PaymentStatus().String(),
		pgconv.StringPtrToPgtype(o.StripePaymentIntentID()),
		pgconv.StringPtrToPgtype(o.StripeRefundID()),
		pgconv.TimePtrToPgtype(o.PaidAt()),
		pgconv.TimePtrToPgtype(o.RefundRequestedAt()),
		pgconv.TimePtrToPgtype(o.RefundedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order payment state", err)
	}

	return nil
}

const updateOrderStatusSQL = `
UPDATE orders SET order_status = $2 WHERE id = $1
`

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status) error {
	tag, err := tx.Exec(ctx, updateOrderStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "order not found")
	}

	return nil
}
