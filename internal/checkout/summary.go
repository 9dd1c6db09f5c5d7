package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/nmarker/unishopping/internal/domain"
)

// Pricing policy constants.
var (
	taxRate               = decimal.RequireFromString("0.08")
	freeShippingThreshold = decimal.RequireFromString("50")
	flatShippingRate      = decimal.RequireFromString("9.99")
)

// Summarize derives an OrderSummary from the given cart items.
//
// Subtotal, tax, and shipping are computed unrounded; the total is their
// unrounded sum. Each of the four figures is then rounded to two decimal
// places independently, so the displayed total can differ by one cent from
// the sum of the displayed components. That is the storefront's established
// pricing behavior and is kept as-is; see the package tests.
//
// The flat shipping rate applies whenever the subtotal is not above the
// free-shipping threshold, including for an empty item list.
func Summarize(items []domain.CartItem) domain.OrderSummary {
	subtotal := domain.ItemsTotal(items)

	tax := subtotal.Mul(taxRate)

	shipping := flatShippingRate
	if subtotal.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping)

	return domain.OrderSummary{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Shipping: shipping.Round(2),
		Total:    total.Round(2),
		Items:    domain.CloneItems(items),
	}
}
