package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gofurn.io/storefront/api"
	"gofurn.io/storefront/cart"
	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

func newTestService(t *testing.T, handler http.Handler) Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	store := cart.NewStore(context.Background(),
		cart.NewFileStorage(filepath.Join(t.TempDir(), "cart.json")), logger)
	client := api.NewClient(server.URL, logger)

	return NewService(client, store, nil, Options{
		Email:     "buyer@example.com",
		PublicKey: "pk_test",
		Currency:  "zar",
	}, logger)
}

func TestAddToCartResolvesProductServerSide(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Product{
			ID: "p1", Name: "Oak table", Image: "oak.jpg", Price: 899.99, InStock: true,
		})
	}))

	require.NoError(t, svc.AddToCart(context.Background(), "p1", 2))

	lines := svc.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Oak table", lines[0].Name)
	assert.Equal(t, 899.99, lines[0].UnitPrice)
	assert.Equal(t, uint64(2), lines[0].Quantity)
	assert.InDelta(t, 1799.98, svc.CartTotal(), 1e-9)
}

func TestAddToCartPropagatesLookupFailure(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "not_found", "message": "no such product"})
	}))

	err := svc.AddToCart(context.Background(), "ghost", 1)

	require.Error(t, err)
	assert.Empty(t, svc.CartLines())
}

func TestCategoryTree(t *testing.T) {
	living := uint64(1)
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/categories", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]*models.Category{
			{ID: 1, Name: "Living room"},
			{ID: 2, Name: "Sofas", ParentID: &living},
		})
	}))

	tree, err := svc.CategoryTree(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Sofas", tree[0].Children[0].Name)
}

func TestProcessEventDedupesRedeliveries(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())

	var delivered int
	svc.OnOrderChange(func(*models.OrderEvent) { delivered++ })

	event := &models.OrderEvent{
		ID:        "evt_1",
		OrderID:   "ord_1",
		Status:    enum.OrderStatusShipped,
		CreatedAt: time.Now(),
	}

	processor := svc.(EventProcessor)
	require.NoError(t, processor.ProcessEvent(context.Background(), event))
	require.NoError(t, processor.ProcessEvent(context.Background(), event))

	assert.Equal(t, 1, delivered)
}

func TestOnOrderChangeConcurrentWithDispatch(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())
	processor := svc.(EventProcessor)

	var delivered atomic.Int64
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = processor.ProcessEvent(context.Background(), &models.OrderEvent{
				ID:      fmt.Sprintf("evt_c%d", i),
				OrderID: "ord_1",
				Status:  enum.OrderStatusShipped,
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			svc.OnOrderChange(func(*models.OrderEvent) { delivered.Add(1) })
		}
	}()
	wg.Wait()
}

func TestHandlerFailureAllowsRedelivery(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())
	s := svc.(*service)

	calls := 0
	s.eventManager.RegisterHandler(enum.OrderStatusPaid, func(context.Context, *models.OrderEvent) error {
		calls++
		if calls == 1 {
			return errors.New("refresh failed")
		}
		return nil
	})

	event := &models.OrderEvent{
		ID:        "evt_retry",
		OrderID:   "ord_1",
		Status:    enum.OrderStatusPaid,
		CreatedAt: time.Now(),
	}

	require.Error(t, s.ProcessEvent(context.Background(), event))
	require.NoError(t, s.ProcessEvent(context.Background(), event))
	require.NoError(t, s.ProcessEvent(context.Background(), event))

	assert.Equal(t, 2, calls)
}

func TestProcessEventUnknownStatus(t *testing.T) {
	svc := newTestService(t, http.NewServeMux())

	err := svc.(EventProcessor).ProcessEvent(context.Background(), &models.OrderEvent{
		ID:      "evt_2",
		OrderID: "ord_1",
		Status:  enum.OrderStatus("mystery"),
	})

	assert.Error(t, err)
}

func TestBeginCheckoutUsesCurrentCart(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Product{ID: "p1", Name: "Chair", Price: 120})
	}))
	require.NoError(t, svc.AddToCart(context.Background(), "p1", 1))

	flow := svc.BeginCheckout()

	assert.Equal(t, enum.CheckoutStatusEditing, flow.State().Status)
	assert.Equal(t, 120.0, flow.Pricing().Subtotal)
}
