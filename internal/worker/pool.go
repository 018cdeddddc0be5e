package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-search-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// spawnWorkerPool spawns N goroutines sharing the delivery channel
func (w *Worker) spawnWorkerPool(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i, deliveries)
	}

	w.logger.Info("Worker pool spawned",
		slog.Int("worker_count", w.concurrency),
	)
}

// workerLoop processes deliveries until the context is canceled or the
// channel closes
func (w *Worker) workerLoop(ctx context.Context, workerNum int, deliveries <-chan amqp.Delivery) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Info("Worker goroutine stopping - delivery channel closed",
					slog.String("worker_name", workerName),
				)
				return
			}

			w.handleDelivery(ctx, workerName, delivery)
		}
	}
}

// handleDelivery processes one delivery and acknowledges it
func (w *Worker) handleDelivery(ctx context.Context, workerName string, delivery amqp.Delivery) {
	err := w.processEvent(ctx, delivery.Body)
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			w.logger.Error("Failed to ACK message",
				slog.String("worker_name", workerName),
				slog.String("error", ackErr.Error()),
			)
		}
		return
	}

	requeue := shouldRequeue(err)

	w.logger.Error("Search event processing failed",
		slog.String("worker_name", workerName),
		slog.String("error", err.Error()),
		slog.Bool("requeue", requeue),
	)

	if nackErr := delivery.Nack(false, requeue); nackErr != nil {
		w.logger.Error("Failed to NACK message",
			slog.String("worker_name", workerName),
			slog.String("error", nackErr.Error()),
		)
	}
}

// shouldRequeue reports whether a failed event is worth another attempt
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidEvent) {
		return false
	}

	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
