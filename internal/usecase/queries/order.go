package queries

import (
	"context"

	"github.com/google/uuid"

	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/pkg/errs"
)

var ErrNotFound = errs.New("not found")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*OrderListItem, error)
	ListAll(ctx context.Context, status *string, limit, offset int32) ([]*OrderListItem, error)
	NotificationsByOrder(ctx context.Context, orderID uuid.UUID) ([]*NotificationJobView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*OrderListItem, error)
	ListAll(ctx context.Context, status *string, limit, offset int32) ([]*OrderListItem, error)
}

type NotificationReadStore interface {
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*NotificationJobView, error)
}

type orderQueriesImpl struct {
	orders        OrderReadStore
	notifications NotificationReadStore
}

func NewOrderQueries(orders OrderReadStore, notifications NotificationReadStore) OrderQueries {
	return &orderQueriesImpl{
		orders:        orders,
		notifications: notifications,
	}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.orders.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*OrderListItem, error) {
	limit, offset = clampPage(limit, offset)
	return q.orders.ListByUser(ctx, userID, limit, offset)
}

func (q *orderQueriesImpl) ListAll(ctx context.Context, status *string, limit, offset int32) ([]*OrderListItem, error) {
	limit, offset = clampPage(limit, offset)
	return q.orders.ListAll(ctx, status, limit, offset)
}

func (q *orderQueriesImpl) NotificationsByOrder(ctx context.Context, orderID uuid.UUID) ([]*NotificationJobView, error) {
	return q.notifications.ListByOrder(ctx, orderID)
}

func clampPage(limit, offset int32) (int32, int32) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
