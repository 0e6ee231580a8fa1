package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gofurn.io/storefront/models"
)

// Store is the single source of truth for cart contents. Every mutation
// writes the whole line set back to storage; persistence is best-effort and
// a failed write never invalidates the in-memory state.
type Store struct {
	mu      sync.Mutex
	lines   []models.CartLine
	storage Storage
	logger  *zap.Logger
}

// NewStore rehydrates the cart from storage. A load failure logs a warning
// and starts the store empty; the cart is a convenience cache, not a system
// of record.
func NewStore(ctx context.Context, storage Storage, logger *zap.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger,
	}

	lines, err := storage.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load cart, starting empty", zap.Error(err))
		return s
	}
	s.lines = lines

	return s
}

// AddItem merges the line into the cart. An existing line with the same
// product id gains the added quantity instead of duplicating.
func (s *Store) AddItem(ctx context.Context, line models.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID {
			s.lines[i].Quantity += line.Quantity
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, line)
	s.persist(ctx)
}

// RemoveItem deletes the matching line; no-op if the product is absent.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity exactly. A non-positive quantity
// removes the line. No-op if the product is absent.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int64) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = uint64(quantity)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current line set.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is recomputed from the current lines on every read, never cached.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// persist writes the full line set to storage. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.lines); err != nil {
		s.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}
