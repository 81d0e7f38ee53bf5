package notifier

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"

	"github.com/akrgroup/backoffice/internal/config"
	"github.com/akrgroup/backoffice/internal/domain/shared"
)

// PooledNotifier runs deliveries through a bounded worker pool so a slow SMTP
// server cannot stall the Kafka consumer loop indefinitely.
type PooledNotifier struct {
	base   Notifier
	pool   *ants.Pool
	logger *slog.Logger
}

func NewPooledNotifier(base Notifier, cfg config.WorkerPoolConfig, logger *slog.Logger) (*PooledNotifier, error) {
	pool, err := ants.NewPool(cfg.Size)
	if err != nil {
		return nil, err
	}

	return &PooledNotifier{
		base:   base,
		pool:   pool,
		logger: logger,
	}, nil
}

// Notify submits the delivery to the pool and waits for its result, keeping
// offset commit semantics identical to a direct call.
func (p *PooledNotifier) Notify(ctx context.Context, event *shared.NotificationEvent) error {
	resultChan := make(chan error, 1)

	eventCopy := *event
	err := p.pool.Submit(func() {
		resultChan <- p.base.Notify(ctx, &eventCopy)
	})
	if err != nil {
		p.logger.Error("Failed to submit notification to worker pool",
			"event_id", event.EventID.String(),
			"error", err,
		)
		return err
	}

	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown gracefully releases the worker pool
func (p *PooledNotifier) Shutdown() {
	p.logger.Info("Shutting down notification worker pool", "running_workers", p.pool.Running())
	p.pool.Release()
}

// Running returns the number of running workers in the pool
func (p *PooledNotifier) Running() int {
	return p.pool.Running()
}
