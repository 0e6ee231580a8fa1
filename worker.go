package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gofurn.io/storefront/models"
)

type EventProcessor interface {
	ProcessEvent(ctx context.Context, event *models.OrderEvent) error
}

// WorkerPool bounds how many order events are handled at once so a burst of
// status updates cannot pile up unbounded goroutines.
type WorkerPool struct {
	tasks     chan func()
	wg        sync.WaitGroup
	mu        sync.Mutex
	closed    bool
	logger    *zap.Logger
	processor EventProcessor
}

func NewWorkerPool(size int, processor EventProcessor, logger *zap.Logger) *WorkerPool {
	wp := &WorkerPool{
		tasks:     make(chan func(), 1000),
		logger:    logger,
		processor: processor,
	}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}

	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit enqueues one event. Events arriving after Shutdown are dropped;
// the subscription is torn down first, so this only catches stragglers
// already in flight on the NATS callback goroutine.
func (wp *WorkerPool) Submit(ctx context.Context, event *models.OrderEvent) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.closed {
		wp.logger.Debug("Worker pool closed, dropping order event",
			zap.String("event_id", event.ID))
		return
	}

	wp.tasks <- func() {
		if err := wp.processor.ProcessEvent(ctx, event); err != nil {
			wp.logger.Error("Failed to process order event",
				zap.Error(err),
				zap.String("order_id", event.OrderID),
				zap.String("event_id", event.ID))
		}
	}
}

// Shutdown stops accepting events and waits for in-flight handlers. Safe to
// call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.tasks)
	wp.mu.Unlock()

	wp.wg.Wait()
}
