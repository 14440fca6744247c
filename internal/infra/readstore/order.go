package readstore

import (
	"context"

	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/pgconv"
	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(pool db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: pool}
}

const findOrderViewSQL = `
SELECT id, user_id, customer_name, phone, address, total_price_cents,
       payment_method, payment_status, order_status,
       stripe_payment_intent_id, stripe_refund_id,
       created_at, paid_at, refund_requested_at, refunded_at
FROM orders
WHERE id = $1
`

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		view              queries.OrderView
		userID            pgtype.UUID
		piID              pgtype.Text
		refundID          pgtype.Text
		createdAt         pgtype.Timestamptz
		paidAt            pgtype.Timestamptz
		refundRequestedAt pgtype.Timestamptz
		refundedAt        pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, findOrderViewSQL, id).Scan(
		&view.ID, &userID, &view.CustomerName, &view.Phone, &view.Address, &view.TotalPriceCents,
		&view.PaymentMethod, &view.PaymentStatus, &view.OrderStatus,
		&piID, &refundID,
		&createdAt, &paidAt, &refundRequestedAt, &refundedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "order not found")
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	view.UserID = pgconv.UUIDPtrFromPgtype(userID)
	view.StripePaymentIntentID = pgconv.StringPtrFromPgtype(piID)
	view.StripeRefundID = pgconv.StringPtrFromPgtype(refundID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	view.RefundRequestedAt = pgconv.TimePtrFromPgtype(refundRequestedAt)
	view.RefundedAt = pgconv.TimePtrFromPgtype(refundedAt)

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

const orderItemViewsSQL = `
SELECT product_id, product_name, unit_price_cents, quantity
FROM order_items
WHERE order_id = $1
`

func (s *OrderReadStore) loadItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := s.db.Query(ctx, orderItemViewsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	items := make([]queries.OrderItemView, 0)
	for rows.Next() {
		var item queries.OrderItemView
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

const listOrdersByUserSQL = `
SELECT id, customer_name, total_price_cents, payment_status, order_status, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

func (s *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.OrderListItem, error) {
	rows, err := s.db.Query(ctx, listOrdersByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders for user", err)
	}
	defer rows.Close()

	return scanOrderListItems(rows)
}

const listAllOrdersSQL = `
SELECT id, customer_name, total_price_cents, payment_status, order_status, created_at
FROM orders
WHERE ($1::text IS NULL OR order_status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

func (s *OrderReadStore) ListAll(ctx context.Context, status *string, limit, offset int32) ([]*queries.OrderListItem, error) {
	rows, err := s.db.Query(ctx, listAllOrdersSQL, pgconv.StringPtrToPgtype(status), limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	return scanOrderListItems(rows)
}

func scanOrderListItems(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.OrderListItem, error) {
	result := make([]*queries.OrderListItem, 0)
	for rows.Next() {
		var (
			item      queries.OrderListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.CustomerName, &item.TotalPriceCents, &item.PaymentStatus, &item.OrderStatus, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order list", err)
	}

	return result, nil
}
