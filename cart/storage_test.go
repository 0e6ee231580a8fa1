package cart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gofurn.io/storefront/models"
)

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart", "cart.json")
	storage := NewFileStorage(path)

	lines := []models.CartLine{
		{ProductID: "p1", Name: "Oak table", Image: "oak.jpg", UnitPrice: 899.99, Quantity: 1},
		{ProductID: "p2", Name: "Chair", UnitPrice: 120, Quantity: 4},
	}
	require.NoError(t, storage.Save(ctx, lines))

	// A fresh storage over the same path simulates a process restart.
	loaded, err := NewFileStorage(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)
}

func TestFileStorageMissingFileIsEmpty(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "absent.json"))

	lines, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCorruptedFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(context.Background(), NewFileStorage(path), zap.NewNop())

	assert.True(t, store.Empty())
}

func TestFileStorageOverwritesOnSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)

	require.NoError(t, storage.Save(ctx, []models.CartLine{{ProductID: "p1", Quantity: 1}}))
	require.NoError(t, storage.Save(ctx, nil))

	lines, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
