package memory

import (
	"github.com/shopspring/decimal"

	"github.com/nmarker/unishopping/internal/domain"
)

// DefaultSeed returns the demo storefront products used in development.
func DefaultSeed() []domain.Product {
	return []domain.Product{
		{
			Name:        "Wireless Headphones",
			Price:       decimal.RequireFromString("89.99"),
			Description: "Over-ear Bluetooth headphones with active noise cancellation and 30-hour battery life.",
			ImageURL:    "https://cdn.example.com/products/wireless-headphones.jpg",
			Images: []string{
				"https://cdn.example.com/products/wireless-headphones.jpg",
				"https://cdn.example.com/products/wireless-headphones-side.jpg",
				"https://cdn.example.com/products/wireless-headphones-case.jpg",
			},
			Category: "electronics",
			InStock:  true,
		},
		{
			Name:        "Smart Watch",
			Price:       decimal.RequireFromString("199.99"),
			Description: "Fitness tracking watch with heart-rate monitor, GPS, and a week of battery.",
			ImageURL:    "https://cdn.example.com/products/smart-watch.jpg",
			Category:    "electronics",
			InStock:     true,
		},
		{
			Name:        "Canvas Backpack",
			Price:       decimal.RequireFromString("49.50"),
			Description: "Water-resistant everyday backpack with a padded 15-inch laptop sleeve.",
			ImageURL:    "https://cdn.example.com/products/canvas-backpack.jpg",
			Images: []string{
				"https://cdn.example.com/products/canvas-backpack.jpg",
				"https://cdn.example.com/products/canvas-backpack-open.jpg",
			},
			Category: "accessories",
			InStock:  true,
		},
		{
			Name:        "Ceramic Pour-Over Set",
			Price:       decimal.RequireFromString("36.00"),
			Description: "Hand-glazed ceramic dripper and carafe for slow-brewed coffee.",
			ImageURL:    "https://cdn.example.com/products/pour-over-set.jpg",
			Category:    "home",
			InStock:     true,
		},
		{
			Name:        "Desk Lamp",
			Price:       decimal.RequireFromString("24.99"),
			Description: "Adjustable LED desk lamp with three color temperatures and a USB charging port.",
			ImageURL:    "https://cdn.example.com/products/desk-lamp.jpg",
			Category:    "home",
			InStock:     true,
		},
		{
			Name:        "Running Shoes",
			Price:       decimal.RequireFromString("119.00"),
			Description: "Lightweight road running shoes with responsive foam cushioning.",
			ImageURL:    "https://cdn.example.com/products/running-shoes.jpg",
			Category:    "sports",
			InStock:     false,
		},
	}
}
