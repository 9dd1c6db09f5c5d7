package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/nmarker/unishopping/pkg/errors"

	"github.com/nmarker/unishopping/internal/domain"
)

// Store is an in-memory catalog implementation. It holds the products for
// the life of the process and pushes a fresh snapshot to every subscriber
// on each change.
type Store struct {
	mu      sync.Mutex
	order   []string
	byID    map[string]domain.Product
	subs    map[uint64]*subscription
	nextSub uint64
	logger  *slog.Logger
}

type subscription struct {
	queue  [][]domain.Product
	notify chan struct{}
	out    chan []domain.Product
}

// New creates an empty in-memory catalog.
func New(logger *slog.Logger) *Store {
	return &Store{
		byID:   make(map[string]domain.Product),
		subs:   make(map[uint64]*subscription),
		logger: logger,
	}
}

// NewSeeded creates an in-memory catalog pre-populated with the given
// products, assigning an ID to each.
func NewSeeded(logger *slog.Logger, products []domain.Product) *Store {
	s := New(logger)
	for _, p := range products {
		_, _ = s.Add(context.Background(), p)
	}
	return s
}

// List returns a snapshot of all products in insertion order.
func (s *Store) List(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Get returns the product with the given ID.
func (s *Store) Get(_ context.Context, id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return p.Clone(), nil
}

// Add inserts a product, assigns it an ID, and pushes the change.
func (s *Store) Add(_ context.Context, p domain.Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.Clone()
	p.ID = uuid.New().String()
	s.order = append(s.order, p.ID)
	s.byID[p.ID] = p

	s.logger.Debug("product added to catalog",
		slog.String("product_id", p.ID),
		slog.String("name", p.Name),
	)
	s.broadcastLocked()

	return p.ID, nil
}

// Update replaces the product with the given ID and pushes the change.
func (s *Store) Update(_ context.Context, id string, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	p = p.Clone()
	p.ID = id
	s.byID[id] = p

	s.logger.Debug("product updated", slog.String("product_id", id))
	s.broadcastLocked()

	return nil
}

// Delete removes the product with the given ID and pushes the change.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(s.byID, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Debug("product deleted", slog.String("product_id", id))
	s.broadcastLocked()

	return nil
}

// Products returns a live sequence of catalog snapshots: current state
// first, then one snapshot per change, in change order.
func (s *Store) Products(ctx context.Context) <-chan []domain.Product {
	sub := &subscription{
		notify: make(chan struct{}, 1),
		out:    make(chan []domain.Product),
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

func (s *Store) pump(ctx context.Context, id uint64, sub *subscription) {
	defer func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(sub.out)
	}()

	for {
		s.mu.Lock()
		var snapshot []domain.Product
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

func (s *Store) snapshotLocked() []domain.Product {
	snapshot := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.byID[id].Clone())
	}
	return snapshot
}
