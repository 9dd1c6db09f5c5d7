package http

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/nmarker/unishopping/pkg/errors"
)

// parsePrice parses a decimal price string and rejects negative values.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperrors.InvalidInput("price must be a decimal number")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, apperrors.InvalidInput("price must not be negative")
	}
	return d, nil
}
