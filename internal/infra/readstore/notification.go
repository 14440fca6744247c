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

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(pool db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: pool}
}

const listJobsByOrderSQL = `
SELECT id, type, channel, recipient, order_id, status, attempts,
       next_attempt_at, last_error, created_at, sent_at
FROM notifications
WHERE order_id = $1
ORDER BY created_at ASC
`

// ListByOrder exposes an order's delivery history for admin diagnostics.
func (s *NotificationReadStore) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*queries.NotificationJobView, error) {
	rows, err := s.db.Query(ctx, listJobsByOrderSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification jobs", err)
	}
	defer rows.Close()

	result := make([]*queries.NotificationJobView, 0)
	for rows.Next() {
		var (
			view          queries.NotificationJobView
			orderID       pgtype.UUID
			nextAttemptAt pgtype.Timestamptz
			lastError     pgtype.Text
			createdAt     pgtype.Timestamptz
			sentAt        pgtype.Timestamptz
		)
		if err := rows.Scan(&view.ID, &view.Type, &view.Channel, &view.Recipient, &orderID,
			&view.Status, &view.Attempts, &nextAttemptAt, &lastError, &createdAt, &sentAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		view.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
		view.NextAttemptAt = pgconv.TimePtrFromPgtype(nextAttemptAt)
		view.LastError = pgconv.StringPtrFromPgtype(lastError)
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.SentAt = pgconv.TimePtrFromPgtype(sentAt)
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}

	return result, nil
}
