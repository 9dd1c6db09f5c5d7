package catalog

import (
	"context"

	"github.com/nmarker/unishopping/internal/domain"
)

// Catalog is the product catalog collaborator. Product IDs are assigned by
// the catalog on insert; updates are pushed to Products subscribers on
// every change.
type Catalog interface {
	// List returns a snapshot of all products.
	List(ctx context.Context) ([]domain.Product, error)

	// Get returns the product with the given ID.
	Get(ctx context.Context, id string) (domain.Product, error)

	// Add inserts a product and returns the assigned ID.
	Add(ctx context.Context, p domain.Product) (string, error)

	// Update replaces the product with the given ID.
	Update(ctx context.Context, id string, p domain.Product) error

	// Delete removes the product with the given ID.
	Delete(ctx context.Context, id string) error

	// Products returns a live sequence of catalog snapshots: the current
	// products immediately, then a new snapshot after every change. The
	// channel closes when ctx is canceled.
	Products(ctx context.Context) <-chan []domain.Product
}
