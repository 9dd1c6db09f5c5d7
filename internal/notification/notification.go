package notification

import "context"

// Channel delivers order confirmations. Delivery is best-effort: callers
// log failures but never surface them to the shopper or let them affect
// the order outcome.
type Channel interface {
	SendConfirmation(ctx context.Context, orderID, email string) error
}
