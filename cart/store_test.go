package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gofurn.io/storefront/models"
)

type memStorage struct {
	lines     []models.CartLine
	loadErr   error
	saveErr   error
	saveCount int
}

func (m *memStorage) Load(context.Context) ([]models.CartLine, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.lines, nil
}

func (m *memStorage) Save(_ context.Context, lines []models.CartLine) error {
	m.saveCount++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lines = append([]models.CartLine(nil), lines...)
	return nil
}

func newTestStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	return NewStore(context.Background(), storage, zap.NewNop())
}

func line(id string, qty uint64, price float64) models.CartLine {
	return models.CartLine{ProductID: id, Name: "Item " + id, UnitPrice: price, Quantity: qty}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})

	store.AddItem(ctx, line("p1", 2, 10))
	store.AddItem(ctx, line("p1", 3, 10))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint64(5), lines[0].Quantity)
	assert.Equal(t, 50.0, store.Total())
}

func TestAddItemAppendsNewProducts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})

	store.AddItem(ctx, line("p1", 1, 10))
	store.AddItem(ctx, line("p2", 2, 25))

	require.Len(t, store.Lines(), 2)
	assert.Equal(t, 60.0, store.Total())
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})

	store.AddItem(ctx, line("p1", 2, 10))
	store.UpdateQuantity(ctx, "p1", 7)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint64(7), lines[0].Quantity)
}

func TestUpdateQuantityFloorRemovesLine(t *testing.T) {
	for _, qty := range []int64{0, -1, -100} {
		ctx := context.Background()
		store := newTestStore(t, &memStorage{})
		store.AddItem(ctx, line("p1", 1, 10))

		store.UpdateQuantity(ctx, "p1", qty)

		assert.True(t, store.Empty(), "quantity %d should empty the cart", qty)
	}
}

func TestUpdateQuantityMissingProductNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})
	store.AddItem(ctx, line("p1", 1, 10))

	store.UpdateQuantity(ctx, "missing", 5)

	require.Len(t, store.Lines(), 1)
	assert.Equal(t, uint64(1), store.Lines()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})
	store.AddItem(ctx, line("p1", 1, 10))
	store.AddItem(ctx, line("p2", 1, 20))

	store.RemoveItem(ctx, "p1")
	require.Len(t, store.Lines(), 1)
	assert.Equal(t, "p2", store.Lines()[0].ProductID)

	// Removing an absent product changes nothing.
	store.RemoveItem(ctx, "p1")
	assert.Len(t, store.Lines(), 1)
}

func TestTotalIsAlwaysRederived(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})

	store.AddItem(ctx, line("p1", 2, 10))
	store.AddItem(ctx, line("p2", 1, 25))
	assert.Equal(t, 45.0, store.Total())

	store.UpdateQuantity(ctx, "p1", 3)
	assert.Equal(t, 55.0, store.Total())

	store.RemoveItem(ctx, "p2")
	assert.Equal(t, 30.0, store.Total())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{})
	store.AddItem(ctx, line("p1", 2, 10))

	store.Clear(ctx)

	assert.True(t, store.Empty())
	assert.Equal(t, 0.0, store.Total())
}

func TestNewStoreRehydratesFromStorage(t *testing.T) {
	storage := &memStorage{lines: []models.CartLine{line("p1", 4, 12.5)}}
	store := newTestStore(t, storage)

	require.Len(t, store.Lines(), 1)
	assert.Equal(t, 50.0, store.Total())
}

func TestNewStoreStartsEmptyOnLoadFailure(t *testing.T) {
	store := newTestStore(t, &memStorage{loadErr: errors.New("disk gone")})
	assert.True(t, store.Empty())
}

func TestSaveFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &memStorage{saveErr: errors.New("disk full")})

	store.AddItem(ctx, line("p1", 2, 10))

	require.Len(t, store.Lines(), 1)
	assert.Equal(t, 20.0, store.Total())
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	storage := &memStorage{}
	store := newTestStore(t, storage)

	store.AddItem(ctx, line("p1", 1, 10))
	store.UpdateQuantity(ctx, "p1", 2)
	store.RemoveItem(ctx, "p1")
	store.Clear(ctx)

	assert.Equal(t, 4, storage.saveCount)
}
