package bootstrap

import (
	"context"

	"restaurant-backend/internal/infra/mail"
	"restaurant-backend/internal/pkg/clock"
	"restaurant-backend/internal/pkg/config"
	"restaurant-backend/internal/usecase/shared"
	"restaurant-backend/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewDispatcher,
	),
	fx.Invoke(runDispatcher),
)

func NewDispatcher(queue shared.JobQueue, sender mail.Sender, clk clock.Clock, cfg config.Config) *worker.Dispatcher {
	return worker.NewDispatcher(queue, sender, clk, worker.Config{
		PollInterval:   cfg.Notification.PollInterval,
		SendingTimeout: cfg.Notification.SendingTimeout,
		BatchSize:      cfg.Notification.BatchSize,
	})
}

func runDispatcher(lc fx.Lifecycle, dispatcher *worker.Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				dispatcher.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
