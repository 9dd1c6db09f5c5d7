package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmarker/unishopping/pkg/httputil"
	"github.com/nmarker/unishopping/pkg/validator"

	"github.com/nmarker/unishopping/internal/catalog"
	"github.com/nmarker/unishopping/internal/domain"
)

// CatalogHandler handles HTTP requests for product catalog endpoints.
type CatalogHandler struct {
	catalog catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  logger,
	}
}

// ProductRequest is the JSON request body for creating or updating a product.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=500"`
	Price       string   `json:"price" validate:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Images      []string `json:"images"`
	Category    string   `json:"category" validate:"required"`
	InStock     bool     `json:"in_stock"`
}

func (req *ProductRequest) toProduct() (domain.Product, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		Name:        req.Name,
		Price:       price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Category:    req.Category,
		InStock:     req.InStock,
	}, nil
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := req.toProduct()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	id, err := h.catalog.Add(r.Context(), product)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	product.ID = id

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := req.toProduct()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.catalog.Update(r.Context(), id, product); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	product.ID = id

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
