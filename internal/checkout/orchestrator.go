package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/nmarker/unishopping/pkg/errors"

	"github.com/nmarker/unishopping/internal/cart"
	"github.com/nmarker/unishopping/internal/domain"
	"github.com/nmarker/unishopping/internal/gateway"
	"github.com/nmarker/unishopping/internal/notification"
)

// Checkout attempt states.
type State string

const (
	StateDraft      State = "draft"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Event is a state transition notification for display surfaces.
type Event struct {
	State   State  `json:"state"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// notifyTimeout bounds the best-effort confirmation send so the goroutine
// cannot linger forever after the attempt resolves.
const notifyTimeout = 15 * time.Second

// ValidationFailedError reports which form sections blocked a submission.
type ValidationFailedError struct {
	Sections []Section
}

func (e *ValidationFailedError) Error() string {
	names := make([]string, len(e.Sections))
	for i, s := range e.Sections {
		names[i] = string(s)
	}
	return fmt.Sprintf("form validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationFailedError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// Orchestrator drives one checkout attempt through its state machine:
//
//	Draft -> Validating -> Submitting -> Succeeded | Failed
//
// Failed goes back through Validating on resubmit; Succeeded is terminal.
// At most one submission is in flight per orchestrator, and a submit
// trigger while one is in flight is a no-op.
type Orchestrator struct {
	mu       sync.Mutex
	state    State
	inFlight bool

	store    *cart.Store
	form     *Form
	gateway  gateway.PaymentGateway
	notifier notification.Channel
	logger   *slog.Logger

	submitTimeout time.Duration
	events        chan Event
}

// Begin opens a checkout attempt against the current cart. If the cart is
// empty the attempt is refused with an EmptyCart error and the Draft state
// is never reached; the caller redirects the shopper back to the cart.
func Begin(
	store *cart.Store,
	gw gateway.PaymentGateway,
	notifier notification.Channel,
	logger *slog.Logger,
	submitTimeout time.Duration,
) (*Orchestrator, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, apperrors.EmptyCart()
	}

	summary := Summarize(items)
	form := NewForm()
	form.SetSummary(&summary)

	o := &Orchestrator{
		state:         StateDraft,
		store:         store,
		form:          form,
		gateway:       gw,
		notifier:      notifier,
		logger:        logger,
		submitTimeout: submitTimeout,
		events:        make(chan Event, 16),
	}

	logger.Info("checkout started",
		slog.Int("item_count", domain.ItemsCount(items)),
		slog.String("total", summary.Total.String()),
	)

	return o, nil
}

// Form returns the checkout form for this attempt.
func (o *Orchestrator) Form() *Form {
	return o.form
}

// State returns the current state of the attempt.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Events returns the state transition feed for display surfaces. Events are
// emitted best-effort; a consumer that falls behind misses intermediate
// transitions but the state machine itself is unaffected.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// Submit runs one submission attempt: mark all fields touched, re-derive
// validity, and, if valid, send the assembled checkout data to the payment
// gateway under the configured timeout.
//
// On gateway success the cart is cleared, a confirmation send is started in
// the background, and the order result carries the literal order ID. On a
// decline the gateway's message is returned verbatim via a PaymentDeclined
// error and the attempt may be resubmitted, which re-validates from scratch.
func (o *Orchestrator) Submit(ctx context.Context) (*domain.OrderResult, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, apperrors.SubmitInFlight()
	}
	if o.state == StateSucceeded {
		o.mu.Unlock()
		return nil, apperrors.InvalidInput("order already placed")
	}
	o.inFlight = true
	o.state = StateValidating
	o.mu.Unlock()
	o.emit(Event{State: StateValidating})

	// Re-derive the summary from the store so the submission reflects the
	// cart as it is now, not as it was when checkout was entered.
	items := o.store.Items()
	if len(items) == 0 {
		o.finish(StateDraft, nil, "")
		return nil, apperrors.EmptyCart()
	}
	summary := Summarize(items)
	o.form.SetSummary(&summary)

	o.form.MarkAllTouched()
	if !o.form.Valid() {
		sections := o.form.InvalidSections()
		o.finish(StateDraft, nil, "")
		o.logger.Info("checkout submit blocked by validation",
			slog.Any("sections", sections),
		)
		return nil, &ValidationFailedError{Sections: sections}
	}

	data := o.form.Data()

	o.mu.Lock()
	o.state = StateSubmitting
	o.mu.Unlock()
	o.emit(Event{State: StateSubmitting})

	submitCtx, cancel := context.WithTimeout(ctx, o.submitTimeout)
	defer cancel()

	result, err := o.gateway.Submit(submitCtx, data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr := apperrors.SubmissionTimeout("the payment service did not respond in time, please try again")
			o.finish(StateFailed, nil, appErr.Message)
			o.logger.Error("checkout submission timed out",
				slog.Duration("timeout", o.submitTimeout),
			)
			return nil, appErr
		}
		o.finish(StateFailed, nil, err.Error())
		o.logger.Error("checkout submission failed",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("submit payment: %w", err)
	}

	if !result.Success || result.OrderID == "" {
		o.finish(StateFailed, result, result.Error)
		o.logger.Info("payment declined",
			slog.String("reason", result.Error),
		)
		return result, apperrors.PaymentDeclined(result.Error)
	}

	// Order placed: clear the cart, then fire the confirmation without
	// waiting on it. Delivery failure is logged and never affects the
	// Succeeded state.
	o.store.Clear()
	o.sendConfirmation(result.OrderID, data.CustomerInfo.Email)

	o.finish(StateSucceeded, result, "")
	o.logger.Info("order placed",
		slog.String("order_id", result.OrderID),
		slog.String("total", data.OrderSummary.Total.String()),
	)

	return result, nil
}

// finish records the terminal state of this attempt and emits the
// transition event.
func (o *Orchestrator) finish(state State, result *domain.OrderResult, message string) {
	o.mu.Lock()
	o.state = state
	o.inFlight = false
	o.mu.Unlock()

	ev := Event{State: state, Message: message}
	if result != nil && result.Success {
		ev.OrderID = result.OrderID
	}
	o.emit(ev)
}

// sendConfirmation starts the best-effort confirmation send. It runs on a
// background context: navigating away from checkout must not cancel a
// delivery for an order already committed.
func (o *Orchestrator) sendConfirmation(orderID, email string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := o.notifier.SendConfirmation(ctx, orderID, email); err != nil {
			o.logger.Error("order confirmation delivery failed",
				slog.String("order_id", orderID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// emit publishes an event without blocking the state machine.
func (o *Orchestrator) emit(ev Event) {
	select {
	case o.events <- ev:
	default:
		o.logger.Warn("checkout event dropped",
			slog.String("state", string(ev.State)),
		)
	}
}
