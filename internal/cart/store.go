package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nmarker/unishopping/internal/domain"
)

// Store is the sole mutator and source of truth for the shopping cart.
// The cart is an ordered mapping from product key to CartItem; insertion
// order is preserved and display-relevant. The store is safe for use from
// multiple goroutines and lives for the duration of a shopper session.
//
// All operations are total: invalid quantities are normalized, missing keys
// are no-ops, and nothing returns an error.
type Store struct {
	mu      sync.Mutex
	order   []string
	items   map[string]domain.CartItem
	subs    map[uint64]*subscription
	nextSub uint64
	logger  *slog.Logger
}

// subscription delivers cart snapshots to one subscriber in mutation order.
// The queue is unbounded on purpose: snapshots must not be coalesced or
// dropped, and a slow consumer must not block mutations or other subscribers.
type subscription struct {
	queue  [][]domain.CartItem
	notify chan struct{}
	out    chan []domain.CartItem
}

// NewStore creates an empty cart store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		items:  make(map[string]domain.CartItem),
		subs:   make(map[uint64]*subscription),
		logger: logger,
	}
}

// Add puts one unit of the product in the cart. If the product's key is
// already present, only the quantity is incremented: the stored product
// snapshot keeps the state captured at first insertion, even if the catalog
// has since changed price or description. New entries go to the end.
func (s *Store) Add(product domain.Product) {
	key := product.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.items[key]; ok {
		item.Quantity++
		s.items[key] = item
	} else {
		s.order = append(s.order, key)
		s.items[key] = domain.CartItem{Product: product.Clone(), Quantity: 1}
	}

	s.logger.Debug("item added to cart",
		slog.String("key", key),
		slog.Int("quantity", s.items[key].Quantity),
	)
	s.broadcastLocked()
}

// Remove deletes the entry for the given key. Removing a missing key is a
// no-op and does not emit.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return
	}
	s.deleteLocked(key)

	s.logger.Debug("item removed from cart", slog.String("key", key))
	s.broadcastLocked()
}

// SetQuantity sets the quantity for the given key. A quantity of zero or
// less removes the entry; a quantity is never stored as zero or negative.
// A missing key or an unchanged quantity is a no-op and does not emit.
func (s *Store) SetQuantity(key string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return
	}

	if n <= 0 {
		s.deleteLocked(key)
	} else if item.Quantity == n {
		return
	} else {
		item.Quantity = n
		s.items[key] = item
	}

	s.logger.Debug("cart item quantity set",
		slog.String("key", key),
		slog.Int("quantity", n),
	)
	s.broadcastLocked()
}

// Clear empties the cart. Clearing an already empty cart does not emit.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return
	}
	s.order = nil
	s.items = make(map[string]domain.CartItem)

	s.logger.Debug("cart cleared")
	s.broadcastLocked()
}

// Items returns a snapshot of the current items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Total returns the sum of price * quantity over the current items.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, key := range s.order {
		total = total.Add(s.items[key].Subtotal())
	}
	return total
}

// ItemCount returns the sum of quantities over the current items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, key := range s.order {
		count += s.items[key].Quantity
	}
	return count
}

// Subscribe returns a channel of item snapshots. The subscriber immediately
// receives the latest snapshot, then one snapshot per structural mutation,
// in mutation order. The channel is closed when ctx is canceled.
func (s *Store) Subscribe(ctx context.Context) <-chan []domain.CartItem {
	sub := &subscription{
		notify: make(chan struct{}, 1),
		out:    make(chan []domain.CartItem),
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	sub.queue = append(sub.queue, s.snapshotLocked())
	s.mu.Unlock()

	go s.pump(ctx, id, sub)

	return sub.out
}

// pump drains one subscriber's queue, delivering snapshots strictly in order.
func (s *Store) pump(ctx context.Context, id uint64, sub *subscription) {
	defer func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(sub.out)
	}()

	for {
		s.mu.Lock()
		var snapshot []domain.CartItem
		pending := len(sub.queue) > 0
		if pending {
			snapshot = sub.queue[0]
			sub.queue = sub.queue[1:]
		}
		s.mu.Unlock()

		if pending {
			select {
			case sub.out <- snapshot:
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-sub.notify:
		case <-ctx.Done():
			return
		}
	}
}

// broadcastLocked queues the current snapshot for every subscriber.
// Callers must hold s.mu.
func (s *Store) broadcastLocked() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for _, sub := range s.subs {
		sub.queue = append(sub.queue, snapshot)
		select {
		case sub.notify <- struct{}{}:
		default:
		}
	}
}

// snapshotLocked copies the current items in insertion order.
// Callers must hold s.mu.
func (s *Store) snapshotLocked() []domain.CartItem {
	snapshot := make([]domain.CartItem, 0, len(s.order))
	for _, key := range s.order {
		snapshot = append(snapshot, s.items[key].Clone())
	}
	return snapshot
}

// deleteLocked removes the key from both the map and the order slice.
// Callers must hold s.mu.
func (s *Store) deleteLocked(key string) {
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
