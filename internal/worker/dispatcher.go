package worker

import (
	"context"
	"log/slog"
	"time"

	"restaurant-backend/internal/domain/notification"
	"restaurant-backend/internal/infra/mail"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/usecase/shared"
)

// Dispatcher polls the notification table and delivers claimed jobs.
// Claiming and settling each run in their own short transaction; the
// send itself happens outside any transaction, so a slow SMTP peer can
// never hold row locks. Delivery is at-least-once: a crash after send
// but before MarkSent re-delivers after the sending timeout.
type Dispatcher struct {
	queue          shared.JobQueue
	sender         mail.Sender
	clock          clock.Clock
	pollInterval   time.Duration
	sendingTimeout time.Duration
	batchSize      int32
}

type Config struct {
	PollInterval   time.Duration
	SendingTimeout time.Duration
	BatchSize      int
}

func NewDispatcher(queue shared.JobQueue, sender mail.Sender, clk clock.Clock, cfg Config) *Dispatcher {
	return &Dispatcher{
		queue:          queue,
		sender:         sender,
		clock:          clk,
		pollInterval:   cfg.PollInterval,
		sendingTimeout: cfg.SendingTimeout,
		batchSize:      int32(cfg.BatchSize),
	}
}

// Run polls with a fixed delay between batches until the context is
// canceled. The delay is measured from the end of one batch to the start
// of the next, so long batches do not pile up.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("notification dispatcher started",
		"poll_interval", d.pollInterval.String(),
		"batch_size", d.batchSize,
		"sending_timeout", d.sendingTimeout.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("notification dispatcher stopped")
			return
		case <-time.After(d.pollInterval):
		}

		if _, err := d.ProcessBatch(ctx); err != nil {
			slog.Error("notification batch failed", "error", err.Error())
		}
	}
}

// ProcessBatch claims one batch of due jobs and attempts delivery for
// each. It returns the number of jobs claimed.
func (d *Dispatcher) ProcessBatch(ctx context.Context) (int, error) {
	now := d.clock.Now()
	claimed, err := d.queue.ClaimDueBatch(ctx, now, now.Add(-d.sendingTimeout), d.batchSize)
	if err != nil {
		return 0, err
	}

	for _, job := range claimed {
		d.deliver(ctx, job)
	}

	return len(claimed), nil
}

func (d *Dispatcher) deliver(ctx context.Context, job notification.ClaimedJob) {
	message := notification.Render(job, d.clock.Now())

	if sendErr := d.sender.Send(ctx, job.Recipient, message.Subject, message.Body); sendErr != nil {
		slog.Warn("notification delivery failed",
			"job_id", job.ID, "type", job.Kind.String(),
			"recipient", job.Recipient, "attempts", job.Attempts,
			"error", sendErr.Error())
		if markErr := d.queue.MarkFailed(ctx, job.ID, sendErr.Error(), d.clock.Now()); markErr != nil {
			slog.Error("failed to mark notification job failed", "job_id", job.ID, "error", markErr.Error())
		}
		return
	}

	if markErr := d.queue.MarkSent(ctx, job.ID, d.clock.Now()); markErr != nil {
		// The job will be re-claimed after the sending timeout and the
		// mail delivered again; acceptable under at-least-once.
		slog.Error("failed to mark notification job sent", "job_id", job.ID, "error", markErr.Error())
		return
	}

	slog.Info("notification delivered",
		"job_id", job.ID, "type", job.Kind.String(), "recipient", job.Recipient)
}
