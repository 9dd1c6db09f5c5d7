package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/nmarker/unishopping/pkg/errors"
	"github.com/nmarker/unishopping/pkg/httputil"
	"github.com/nmarker/unishopping/pkg/validator"

	"github.com/nmarker/unishopping/internal/cart"
	"github.com/nmarker/unishopping/internal/catalog"
	"github.com/nmarker/unishopping/internal/domain"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	store   *cart.Store
	catalog catalog.Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(store *cart.Store, cat catalog.Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: cat,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SetQuantityRequest is the JSON request body for setting an item's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart state returned by all cart endpoints.
type CartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
}

func (h *CartHandler) cartResponse() CartResponse {
	items := h.store.Items()
	return CartResponse{
		Items:     items,
		Total:     h.store.Total(),
		ItemCount: h.store.ItemCount(),
	}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartResponse()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if !product.InStock {
		httputil.WriteError(w, r, apperrors.InvalidInput("product is out of stock"), h.logger)
		return
	}

	h.store.Add(product)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartResponse()})
}

// SetQuantity handles PUT /api/v1/cart/items/{key}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	h.store.SetQuantity(key, req.Quantity)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartResponse()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{key}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	h.store.Remove(key)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartResponse()})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartResponse()})
}
