// Package storefront ties the cart store, checkout flow and backend API
// client together into one service the UI layer drives.
package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"gofurn.io/storefront/api"
	"gofurn.io/storefront/cart"
	"gofurn.io/storefront/catalog"
	"gofurn.io/storefront/checkout"
	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

type Service interface {
	ListProducts(ctx context.Context, categoryID *uint64) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CategoryTree(ctx context.Context) ([]*models.CategoryTree, error)

	AddToCart(ctx context.Context, productID string, quantity uint64) error
	RemoveFromCart(ctx context.Context, productID string)
	SetCartQuantity(ctx context.Context, productID string, quantity int64)
	ClearCart(ctx context.Context)
	CartLines() []models.CartLine
	CartTotal() float64

	BeginCheckout() *checkout.Flow

	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, limit, offset uint64) ([]*models.Order, error)
	OnOrderChange(fn func(*models.OrderEvent))

	ListInventory(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustInventory(ctx context.Context, productID string, delta int64, reason string) error
	SalesReport(ctx context.Context, from, to time.Time) (*models.SalesReport, error)
	AuditLog(ctx context.Context, limit, offset uint64) ([]*models.AuditEntry, error)

	Shutdown()
}

// Options carries the per-customer settings the service needs beyond its
// collaborators.
type Options struct {
	Email     string
	PublicKey string
	Currency  stripe.Currency
}

type service struct {
	client *api.Client
	cart   *cart.Store
	opts   Options

	eventManager *EventManager
	workerPool   *WorkerPool
	seen         *seenEvents

	// onChange is read from worker goroutines while the UI goroutine may
	// still be registering it.
	onChangeMu sync.RWMutex
	onChange   func(*models.OrderEvent)

	logger *zap.Logger
}

// NewService wires the service. natsConn may be nil; order tracking then
// falls back to polling via GetOrder.
func NewService(client *api.Client, cartStore *cart.Store, natsConn *nats.Conn, opts Options, logger *zap.Logger) Service {
	s := &service{
		client: client,
		cart:   cartStore,
		opts:   opts,
		seen:   newSeenEvents(),
		logger: logger,
	}

	s.eventManager = NewEventManager(natsConn, logger)
	s.registerEventHandlers()

	if natsConn != nil {
		s.workerPool = NewWorkerPool(4, s, logger)
		if err := s.eventManager.SubscribeToEvents(s.workerPool); err != nil {
			logger.Error("Failed to subscribe to order events", zap.Error(err))
		}
	}

	return s
}

func (s *service) registerEventHandlers() {
	for _, status := range []enum.OrderStatus{
		enum.OrderStatusPaid,
		enum.OrderStatusProcessing,
		enum.OrderStatusShipped,
		enum.OrderStatusCompleted,
		enum.OrderStatusCancelled,
		enum.OrderStatusRefunded,
		enum.OrderStatusFailed,
	} {
		s.eventManager.RegisterHandler(status, s.handleOrderStatusChange)
	}
}

func (s *service) handleOrderStatusChange(_ context.Context, event *models.OrderEvent) error {
	s.logger.Info("Order status changed",
		zap.String("order_id", event.OrderID),
		zap.String("status", string(event.Status)))

	s.onChangeMu.RLock()
	fn := s.onChange
	s.onChangeMu.RUnlock()

	if fn != nil {
		fn(event)
	}
	return nil
}

// ProcessEvent dispatches one order event. Redelivered events are dropped
// only once a handler took them to completion; a handler failure releases
// the id so the next redelivery is processed.
func (s *service) ProcessEvent(ctx context.Context, event *models.OrderEvent) error {
	handler, exists := s.eventManager.GetHandler(event.Status)
	if !exists {
		return fmt.Errorf("no handler registered for order status: %s", event.Status)
	}

	if s.seen.MarkSeen(event.ID) {
		s.logger.Debug("Order event already processed", zap.String("event_id", event.ID))
		return nil
	}

	if err := handler(ctx, event); err != nil {
		s.seen.Forget(event.ID)
		return err
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, categoryID *uint64) ([]*models.Product, error) {
	return s.client.ListProducts(ctx, categoryID)
}

func (s *service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.client.GetProduct(ctx, id)
}

func (s *service) CategoryTree(ctx context.Context) ([]*models.CategoryTree, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return catalog.BuildTree(categories), nil
}

// AddToCart resolves the product server-side and merges it into the cart,
// so the stored line carries the live name, image and price.
func (s *service) AddToCart(ctx context.Context, productID string, quantity uint64) error {
	product, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product %s: %w", productID, err)
	}

	s.cart.AddItem(ctx, models.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
	return nil
}

func (s *service) RemoveFromCart(ctx context.Context, productID string) {
	s.cart.RemoveItem(ctx, productID)
}

func (s *service) SetCartQuantity(ctx context.Context, productID string, quantity int64) {
	s.cart.UpdateQuantity(ctx, productID, quantity)
}

func (s *service) ClearCart(ctx context.Context) {
	s.cart.Clear(ctx)
}

func (s *service) CartLines() []models.CartLine {
	return s.cart.Lines()
}

func (s *service) CartTotal() float64 {
	return s.cart.Total()
}

// BeginCheckout starts a fresh checkout session over the current cart.
func (s *service) BeginCheckout() *checkout.Flow {
	return checkout.NewFlow(s.cart, s.client, s.opts.Email, s.opts.PublicKey, s.opts.Currency, s.logger)
}

func (s *service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.client.GetOrder(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, limit, offset uint64) ([]*models.Order, error) {
	return s.client.ListOrders(ctx, limit, offset)
}

// OnOrderChange sets the callback invoked for live order status updates.
// Safe to call while events are being dispatched.
func (s *service) OnOrderChange(fn func(*models.OrderEvent)) {
	s.onChangeMu.Lock()
	defer s.onChangeMu.Unlock()
	s.onChange = fn
}

func (s *service) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	return s.client.ListInventory(ctx)
}

func (s *service) AdjustInventory(ctx context.Context, productID string, delta int64, reason string) error {
	return s.client.AdjustInventory(ctx, productID, delta, reason)
}

func (s *service) SalesReport(ctx context.Context, from, to time.Time) (*models.SalesReport, error) {
	return s.client.GetSalesReport(ctx, from, to)
}

func (s *service) AuditLog(ctx context.Context, limit, offset uint64) ([]*models.AuditEntry, error) {
	return s.client.ListAuditLog(ctx, limit, offset)
}

// Shutdown tears the subscription down before the worker pool so the NATS
// callback cannot feed a closed pool.
func (s *service) Shutdown() {
	s.eventManager.Unsubscribe()
	if s.workerPool != nil {
		s.workerPool.Shutdown()
	}
}
