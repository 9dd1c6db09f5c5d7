package domain

import "github.com/shopspring/decimal"

// CartItem pairs a product snapshot with a quantity. Items are owned by the
// cart store; readers only ever see copies.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price * quantity for this item.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a deep copy of the item.
func (i CartItem) Clone() CartItem {
	return CartItem{Product: i.Product.Clone(), Quantity: i.Quantity}
}

// ItemsTotal sums price * quantity over the given items.
func ItemsTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemsCount sums the quantities of the given items.
func ItemsCount(items []CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CloneItems returns a deep copy of the given item slice.
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
