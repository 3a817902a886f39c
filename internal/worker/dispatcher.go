package worker

import (
	"context"
	"log/slog"
	"time"

	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/usecase/shared"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Dispatcher drains the notification outbox. Jobs stay row-locked while they are
// published, so parallel dispatchers never send the same job twice.
type Dispatcher struct {
	uow         shared.UnitOfWork
	publisher   Publisher
	clock       clock.Clock
	interval    time.Duration
	batchSize   int
	maxAttempts int
	logger      *slog.Logger
}

func NewDispatcher(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, cfg config.WorkerConfig) *Dispatcher {
	return &Dispatcher{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		interval:    cfg.DispatchInterval,
		batchSize:   cfg.DispatchBatchSize,
		maxAttempts: cfg.MaxAttempts,
		logger:      slog.Default().With("component", "notification_dispatcher"),
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("ディスパッチャー開始", "interval", d.interval.String(), "batch_size", d.batchSize)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("ディスパッチャー停止")
			return
		case <-ticker.C:
			if _, err := d.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
				d.logger.Error("dispatch batch failed", "error", err.Error())
			}
		}
	}
}

// DispatchOnce processes one batch and returns how many jobs were sent.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	sent := 0
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), d.clock.Now(), d.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			status, lastErr := d.deliver(ctx, job)
			if err := tx.Notifications().UpdateJobStatus(ctx, tx.DB(), job.ID, status, lastErr); err != nil {
				return errs.Wrapf(err, "update job %s", job.ID)
			}
			if status == shared.JobStatusSent {
				sent++
			}
		}
		return nil
	})
	return sent, err
}

func (d *Dispatcher) deliver(ctx context.Context, job shared.NotificationJob) (string, *string) {
	err := d.publisher.Publish(ctx, job.Topic, job.Payload)
	if err == nil {
		metrics.NotificationsDispatchedTotal.WithLabelValues(job.Topic, "sent").Inc()
		return shared.JobStatusSent, nil
	}

	msg := err.Error()
	attempt := job.Attempts + 1
	if attempt >= d.maxAttempts {
		metrics.NotificationsDispatchedTotal.WithLabelValues(job.Topic, "failed").Inc()
		d.logger.Error("notification job failed permanently",
			"job_id", job.ID, "topic", job.Topic, "attempts", attempt, "error", msg)
		return shared.JobStatusFailed, &msg
	}

	metrics.NotificationsDispatchedTotal.WithLabelValues(job.Topic, "retry").Inc()
	d.logger.Warn("notification job will be retried",
		"job_id", job.ID, "topic", job.Topic, "attempts", attempt, "error", msg)
	return shared.JobStatusQueued, &msg
}
