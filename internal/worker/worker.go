package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/job-search-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer delivers search events from the broker
type Consumer interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// SearchStore persists search records
type SearchStore interface {
	SaveSearch(ctx context.Context, record *domain.SearchRecord) error
}

// Config holds worker configuration
type Config struct {
	Logger       *slog.Logger
	Consumer     Consumer
	Store        SearchStore
	WorkerID     string
	Concurrency  int
	EventTimeout time.Duration
}

// Worker records search events into the search history
type Worker struct {
	logger       *slog.Logger
	consumer     Consumer
	store        SearchStore
	workerID     string
	concurrency  int
	eventTimeout time.Duration
	wg           sync.WaitGroup
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Worker{
		logger:       cfg.Logger,
		consumer:     cfg.Consumer,
		store:        cfg.Store,
		workerID:     cfg.WorkerID,
		concurrency:  concurrency,
		eventTimeout: cfg.EventTimeout,
	}
}

// Start subscribes to the queue and spawns the worker pool. It returns once
// the pool is running; call Wait to block until it drains.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("event_timeout", w.eventTimeout),
	)

	deliveries, err := w.consumer.Consume(w.workerID)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	w.spawnWorkerPool(ctx, deliveries)

	return nil
}

// Wait blocks until every pool goroutine has exited
func (w *Worker) Wait() {
	w.wg.Wait()
	w.logger.Info("Worker stopped", slog.String("worker_id", w.workerID))
}
