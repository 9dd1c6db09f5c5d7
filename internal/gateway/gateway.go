package gateway

import (
	"context"

	"github.com/nmarker/unishopping/internal/domain"
)

// PaymentGateway accepts a checkout payload and resolves it to an order
// result. Implementations differ only in what they return: the simulated
// gateway ships with the storefront, a real integration replaces it behind
// the same contract.
//
// A declined payment is not an error: it comes back as an OrderResult with
// Success false and the decline message. The error return is reserved for
// transport-level failures (including context cancellation and deadline).
type PaymentGateway interface {
	Submit(ctx context.Context, data domain.CheckoutData) (*domain.OrderResult, error)
}
