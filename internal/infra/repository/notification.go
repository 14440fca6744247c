package repository

import (
	"context"
	"sort"
	"time"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/infra"
	"restaurant-backend/internal/infra/db"
	"restaurant-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(pool db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

const createNotificationJobSQL = `
INSERT INTO notifications (
	id, type, channel, recipient, order_id, status,
	attempts, next_attempt_at, last_error, created_at, sent_at, payload
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// Create persists a pending job on the caller's transaction so the job
// commits or rolls back together with the state change that produced it.
func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, job *notification.Job) error {
	_, err := tx.Exec(ctx, createNotificationJobSQL,
		job.ID(),
		job.Kind().String(),
		job.Channel().String(),
		job.Recipient(),
		pgconv.UUIDPtrToPgtype(job.OrderID()),
		job.Status().String(),
		job.Attempts(),
		pgconv.TimeToPgtype(job.NextAttemptAt()),
		pgconv.StringPtrToPgtype(job.LastError()),
		pgconv.TimeToPgtype(job.CreatedAt()),
		pgconv.TimePtrToPgtype(job.SentAt()),
		job.Payload(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

// Claim = due pending/failed jobs plus sending jobs whose worker went
// quiet past the timeout. SKIP LOCKED resolves contention between
// concurrent workers by exclusion, never by waiting: rows locked by a
// peer simply stay out of this batch.
const claimDueBatchSQL = `
WITH due AS (
	SELECT id
	FROM notifications
	WHERE (status IN ('pending', 'failed') AND next_attempt_at <= $1)
	   OR (status = 'sending' AND processing_started_at <= $2)
	ORDER BY created_at ASC
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
UPDATE notifications n
SET status = 'sending',
    processing_started_at = $1,
    last_error = NULL
FROM due
WHERE n.id = due.id
RETURNING n.id, n.type, n.channel, n.recipient, n.order_id, n.attempts, n.payload, n.created_at
`

// ClaimDueBatch atomically marks up to limit due jobs as sending and
// returns immutable snapshots. The whole claim is a single statement, so
// the row locks are held only for its duration.
func (r *NotificationRepository) ClaimDueBatch(ctx context.Context, now time.Time, stuckBefore time.Time, limit int32) ([]notification.ClaimedJob, error) {
	rows, err := r.db.Query(ctx, claimDueBatchSQL,
		pgconv.TimeToPgtype(now),
		pgconv.TimeToPgtype(stuckBefore),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due notification jobs", err)
	}
	defer rows.Close()

	var claimed []notification.ClaimedJob
	for rows.Next() {
		var (
			job       notification.ClaimedJob
			kind      string
			channel   string
			orderID   pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&job.ID, &kind, &channel, &job.Recipient, &orderID, &job.Attempts, &job.Payload, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan claimed notification job", err)
		}
		job.Kind = notification.Type(kind)
		job.Channel = notification.Channel(channel)
		job.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
		job.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		claimed = append(claimed, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read claimed notification jobs", err)
	}

	// UPDATE ... FROM does not preserve the CTE's ORDER BY.
	sort.Slice(claimed, func(i, j int) bool {
		return claimed[i].CreatedAt.Before(claimed[j].CreatedAt)
	})

	return claimed, nil
}

const markSentSQL = `
UPDATE notifications
SET status = 'sent',
    sent_at = $2,
    next_attempt_at = NULL,
    last_error = NULL,
    processing_started_at = NULL
WHERE id = $1
`

// MarkSent closes the retry window for a delivered job. Attempts are
// left untouched. A missing row is a no-op.
func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, markSentSQL, id, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}

	return nil
}

// The backoff expression reads the pre-update attempts value, so for the
// new count a it yields 10*2^(a-1) seconds, capped at one hour. It must
// stay in step with notification.BackoffSeconds.
const markFailedSQL = `
UPDATE notifications
SET status = 'failed',
    attempts = attempts + 1,
    last_error = $2,
    processing_started_at = NULL,
    next_attempt_at = $3 + make_interval(secs => LEAST(3600, 10 * (1 << LEAST(attempts, 9))))
WHERE id = $1
`

// MarkFailed increments the attempt count and reschedules the job. The
// settle is a single statement: a concurrent timeout re-claim can never
// observe the new attempt count without the matching deadline, and two
// racing settles each land their own increment. A missing row is a
// no-op.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, sendErr string, now time.Time) error {
	lastError := notification.Trim(&sendErr, notification.MaxErrorLength)

	_, err := r.db.Exec(ctx, markFailedSQL,
		id,
		pgconv.StringPtrToPgtype(lastError),
		pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}

	return nil
}
