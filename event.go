package storefront

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

// orderEventSubject is where the backend publishes order status changes.
const orderEventSubject = "order.event.>"

type EventHandler func(context.Context, *models.OrderEvent) error

// EventManager subscribes to the order event stream and fans events out to
// per-status handlers through the worker pool.
type EventManager struct {
	natsConn *nats.Conn
	handlers map[enum.OrderStatus]EventHandler
	sub      *nats.Subscription
	logger   *zap.Logger
}

func NewEventManager(natsConn *nats.Conn, logger *zap.Logger) *EventManager {
	return &EventManager{
		natsConn: natsConn,
		handlers: make(map[enum.OrderStatus]EventHandler),
		logger:   logger,
	}
}

func (em *EventManager) RegisterHandler(status enum.OrderStatus, handler EventHandler) {
	em.handlers[status] = handler
}

func (em *EventManager) GetHandler(status enum.OrderStatus) (EventHandler, bool) {
	handler, exists := em.handlers[status]
	return handler, exists
}

func (em *EventManager) SubscribeToEvents(wp *WorkerPool) error {
	sub, err := em.natsConn.Subscribe(orderEventSubject, func(msg *nats.Msg) {
		var event models.OrderEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			em.logger.Error("Failed to unmarshal order event", zap.Error(err))
			return
		}

		wp.Submit(context.Background(), &event)
	})
	if err != nil {
		return err
	}

	em.sub = sub
	return nil
}

// Unsubscribe removes interest in the order event subject. Must run before
// the worker pool shuts down so the callback stops feeding it.
func (em *EventManager) Unsubscribe() {
	if em.sub == nil {
		return
	}
	if err := em.sub.Unsubscribe(); err != nil {
		em.logger.Warn("Failed to unsubscribe from order events", zap.Error(err))
	}
	em.sub = nil
}

// seenEvents dedupes redelivered events for the lifetime of the process.
// Losing the set on restart only costs a redundant refresh; the server
// stays the system of record.
type seenEvents struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newSeenEvents() *seenEvents {
	return &seenEvents{ids: make(map[string]struct{})}
}

// MarkSeen records the id and reports whether it was already present.
func (s *seenEvents) MarkSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return true
	}
	s.ids[id] = struct{}{}
	return false
}

// Forget removes the id so a redelivery gets processed again, used when a
// handler failed after the id was already recorded.
func (s *seenEvents) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}
