package mock

import (
	"context"
	"log/slog"
	"time"
)

// Channel is a confirmation channel that logs the delivery and always
// succeeds. It simulates a small delay to mimic real sending latency.
type Channel struct {
	logger *slog.Logger
}

// NewChannel creates a new mock confirmation channel.
func NewChannel(logger *slog.Logger) *Channel {
	return &Channel{logger: logger}
}

// SendConfirmation logs the confirmation details and simulates a 10ms
// sending delay.
func (c *Channel) SendConfirmation(ctx context.Context, orderID, email string) error {
	time.Sleep(10 * time.Millisecond)

	c.logger.InfoContext(ctx, "mock channel: order confirmation sent",
		slog.String("order_id", orderID),
		slog.String("email", email),
	)

	return nil
}
