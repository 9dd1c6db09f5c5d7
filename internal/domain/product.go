package domain

import "github.com/shopspring/decimal"

// Product represents a catalog product. The ID is assigned by the catalog;
// products read from the catalog are treated as immutable snapshots.
type Product struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Images      []string        `json:"images,omitempty"`
	Category    string          `json:"category"`
	InStock     bool            `json:"in_stock"`
}

// Key returns the cart key for the product: its catalog ID, or the name
// when the catalog has not assigned an ID yet.
func (p Product) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	c := p
	if p.Images != nil {
		c.Images = make([]string, len(p.Images))
		copy(c.Images, p.Images)
	}
	return c
}

// GalleryImages returns the ordered image references for display: the images
// list when present, otherwise the primary image alone.
func (p Product) GalleryImages() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.ImageURL != "" {
		return []string{p.ImageURL}
	}
	return nil
}
