package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCart_Empty(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubGateway{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CartResponse
	decodeData(t, rec, &resp)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.ItemCount)
	assert.True(t, resp.Total.IsZero())
}

func TestAddItem_Success(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	id := productID(t, cat, "Wireless Headphones")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp CartResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, id, resp.Items[0].Product.ID)
	assert.Equal(t, 1, resp.ItemCount)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("89.99")))
}

func TestAddItem_RepeatIncrementsQuantity(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	id := productID(t, cat, "Desk Lamp")

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})
	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CartResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubGateway{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: "nope"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAddItem_OutOfStock(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	id := productID(t, cat, "Running Shoes")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestAddItem_MissingProductID(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubGateway{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "product_id")
}

func TestSetQuantity_Updates(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	id := productID(t, cat, "Desk Lamp")
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/"+id, SetQuantityRequest{Quantity: 4})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CartResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Items[0].Quantity)
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	id := productID(t, cat, "Desk Lamp")
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})

	rec := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/"+id, SetQuantityRequest{Quantity: 0})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CartResponse
	decodeData(t, rec, &resp)
	assert.Empty(t, resp.Items)
}

func TestRemoveItem(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	id := productID(t, cat, "Desk Lamp")
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: id})

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/"+id, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CartResponse
	decodeData(t, rec, &resp)
	assert.Empty(t, resp.Items)
}

func TestClearCart(t *testing.T) {
	router, _, cat := newTestRouter(t, &stubGateway{})
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: productID(t, cat, "Desk Lamp")})
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: productID(t, cat, "Smart Watch")})

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CartResponse
	decodeData(t, rec, &resp)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.ItemCount)
}

func TestCartRoutes_RequireJSONContentType(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
