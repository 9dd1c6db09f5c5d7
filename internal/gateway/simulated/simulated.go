package simulated

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/nmarker/unishopping/internal/domain"
)

// Order IDs are "ORD-" plus nine base-36 characters, e.g. ORD-K3F9Q2ZM1.
const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// declineMessage is surfaced verbatim to the shopper on a simulated decline.
const declineMessage = "Payment failed. Please try again."

// Gateway is a stand-in payment gateway for development and testing. It
// waits for a fixed delay, then succeeds with the configured probability.
type Gateway struct {
	successRate float64
	delay       time.Duration
	logger      *slog.Logger
}

// New creates a simulated gateway. successRate is the probability of a
// successful charge in [0, 1]; delay is the simulated processing time.
func New(successRate float64, delay time.Duration, logger *slog.Logger) *Gateway {
	return &Gateway{
		successRate: successRate,
		delay:       delay,
		logger:      logger,
	}
}

// Submit simulates processing a payment. It honors context cancellation
// during the simulated delay.
func (g *Gateway) Submit(ctx context.Context, data domain.CheckoutData) (*domain.OrderResult, error) {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if rand.Float64() >= g.successRate {
		g.logger.InfoContext(ctx, "simulated payment declined",
			slog.String("email", data.CustomerInfo.Email),
		)
		return &domain.OrderResult{Success: false, Error: declineMessage}, nil
	}

	orderID := newOrderID()
	g.logger.InfoContext(ctx, "simulated payment accepted",
		slog.String("order_id", orderID),
		slog.String("total", data.OrderSummary.Total.String()),
	)

	return &domain.OrderResult{Success: true, OrderID: orderID}, nil
}

// newOrderID generates an order identifier in the storefront's format.
func newOrderID() string {
	var b strings.Builder
	b.WriteString("ORD-")
	for i := 0; i < 9; i++ {
		b.WriteByte(orderIDAlphabet[rand.Intn(len(orderIDAlphabet))])
	}
	return b.String()
}
