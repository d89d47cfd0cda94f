// Package cart manages the shopping cart line items, persisted as an ordered
// JSON array under the "cart" storage key. Every mutation rewrites the whole
// array before returning, so storage always reflects the last completed
// operation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/pkg/money"
	"github.com/phanto-shop/storefront/storage"
)

// Shipping pricing used by Summary: a flat fee, waived once the subtotal
// reaches the free-shipping threshold.
const (
	ShippingFee           = money.Cents(50_00)
	FreeShippingThreshold = money.Cents(1000_00)
)

// Summary is the derived cart totals block shown at checkout.
type Summary struct {
	Subtotal money.Cents `json:"subtotal"`
	Shipping money.Cents `json:"shipping"`
	Total    money.Cents `json:"total"`
	Count    int         `json:"count"`
}

// Store owns the cart state. Insertion order of lines is preserved; there is
// at most one line per product id.
type Store struct {
	mu    sync.RWMutex
	items []models.CartLine
	ready bool

	storage storage.Store
	log     *zap.Logger
}

func NewStore(st storage.Store, log *zap.Logger) *Store {
	return &Store{storage: st, log: log}
}

// Initialize rehydrates the persisted cart, defaulting to empty when the
// record is absent or corrupt. Once it has succeeded, further calls are
// no-ops; after a storage error the store stays uninitialized and the call
// can be retried.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	data, err := s.storage.Get(ctx, storage.KeyCart)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// first run, nothing persisted yet
	case err != nil:
		return fmt.Errorf("read cart record: %w", err)
	default:
		var items []models.CartLine
		if err := json.Unmarshal(data, &items); err != nil {
			s.log.Warn("Discarding corrupt cart record", zap.Error(err))
		} else {
			s.items = items
		}
	}

	s.ready = true
	return nil
}

// AddItem merges a product into the cart. If a line for the product already
// exists its quantity is incremented and the snapshot fields are left alone;
// otherwise a new line is appended with a snapshot of the product's display
// fields. A quantity below 1 is treated as 1.
func (s *Store) AddItem(ctx context.Context, product models.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, models.NewCartLine(product, qty))
	}

	return s.persist(ctx)
}

// RemoveItem drops the line for the product. No-op when absent.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, line := range s.items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.items = kept

	return s.persist(ctx)
}

// UpdateQuantity sets the line's quantity to an absolute value. A quantity
// of zero or less removes the line. No-op when the product is not in the
// cart.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = qty
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartLine, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the sum of unit price times quantity over all lines.
func (s *Store) Total() money.Cents {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total()
}

// Count is the total unit count across lines, used for the cart badge.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count()
}

// Summary computes the checkout totals including shipping.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := s.total()
	shipping := ShippingFee
	if subtotal >= FreeShippingThreshold || subtotal == 0 {
		shipping = 0
	}

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
		Count:    s.count(),
	}
}

func (s *Store) total() money.Cents {
	var total money.Cents
	for _, line := range s.items {
		total += line.Subtotal()
	}
	return total
}

func (s *Store) count() int {
	count := 0
	for _, line := range s.items {
		count += line.Quantity
	}
	return count
}

// persist rewrites the whole items array. Callers hold the write lock.
func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []models.CartLine{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart record: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyCart, data); err != nil {
		return fmt.Errorf("persist cart record: %w", err)
	}
	return nil
}
