package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/nmarker/unishopping/pkg/errors"
	"github.com/nmarker/unishopping/pkg/httputil"

	"github.com/nmarker/unishopping/internal/cart"
	"github.com/nmarker/unishopping/internal/checkout"
	"github.com/nmarker/unishopping/internal/domain"
	"github.com/nmarker/unishopping/internal/gateway"
	"github.com/nmarker/unishopping/internal/notification"
)

// CheckoutHandler handles HTTP requests for checkout endpoints. Each submit
// request runs one checkout attempt end to end through the orchestrator.
type CheckoutHandler struct {
	store         *cart.Store
	gateway       gateway.PaymentGateway
	notifier      notification.Channel
	logger        *slog.Logger
	submitTimeout time.Duration
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(
	store *cart.Store,
	gw gateway.PaymentGateway,
	notifier notification.Channel,
	logger *slog.Logger,
	submitTimeout time.Duration,
) *CheckoutHandler {
	return &CheckoutHandler{
		store:         store,
		gateway:       gw,
		notifier:      notifier,
		logger:        logger,
		submitTimeout: submitTimeout,
	}
}

// SubmitRequest is the JSON request body for placing an order.
type SubmitRequest struct {
	CustomerInfo    domain.CustomerInfo  `json:"customer_info"`
	ShippingAddress domain.Address       `json:"shipping_address"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
}

// GetSummary handles GET /api/v1/checkout/summary. It refuses an empty
// cart the same way checkout entry does.
func (h *CheckoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items()
	if len(items) == 0 {
		httputil.WriteError(w, r, apperrors.EmptyCart(), h.logger)
		return
	}

	summary := checkout.Summarize(items)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// Submit handles POST /api/v1/checkout. It opens a checkout attempt against
// the current cart, fills the form from the request, and submits it.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	orch, err := checkout.Begin(h.store, h.gateway, h.notifier, h.logger, h.submitTimeout)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	form := orch.Form()
	form.SetCustomer(req.CustomerInfo)
	form.SetShipping(req.ShippingAddress)
	form.SetPayment(req.PaymentMethod)

	result, err := orch.Submit(r.Context())
	if err != nil {
		var valErr *checkout.ValidationFailedError
		if errors.As(err, &valErr) {
			h.writeFormErrors(w, form, valErr)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// writeFormErrors renders per-field validation errors grouped by section,
// e.g. "customer.email": "must be a valid email address".
func (h *CheckoutHandler) writeFormErrors(w http.ResponseWriter, form *checkout.Form, valErr *checkout.ValidationFailedError) {
	fields := make(map[string]string)
	for _, sec := range valErr.Sections {
		for field, msg := range form.SectionErrors(sec) {
			fields[string(sec)+"."+field] = msg
		}
	}

	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: valErr.Error(),
			Fields:  fields,
		},
	})
}
