package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nmarker/unishopping/pkg/health"
	"github.com/nmarker/unishopping/pkg/httputil"

	"github.com/nmarker/unishopping/internal/cart"
	"github.com/nmarker/unishopping/internal/catalog/memory"
	"github.com/nmarker/unishopping/internal/config"
	"github.com/nmarker/unishopping/internal/domain"
	"github.com/nmarker/unishopping/internal/gateway"
	notifymock "github.com/nmarker/unishopping/internal/notification/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment:        "development",
		LogLevel:           "error",
		HTTPPort:           8080,
		GatewaySuccessRate: 1.0,
		GatewayDelay:       0,
		SubmitTimeout:      time.Second,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"*"},
	}
}

// stubGateway is a controllable payment gateway for handler tests.
type stubGateway struct {
	mu     sync.Mutex
	calls  int
	result *domain.OrderResult
	err    error
}

func (g *stubGateway) Submit(_ context.Context, _ domain.CheckoutData) (*domain.OrderResult, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// newTestRouter builds the full router over a seeded catalog and an empty cart.
func newTestRouter(t *testing.T, gw gateway.PaymentGateway) (http.Handler, *cart.Store, *memory.Store) {
	t.Helper()

	logger := newTestLogger()
	cat := memory.NewSeeded(logger, memory.DefaultSeed())
	store := cart.NewStore(logger)
	notifier := notifymock.NewChannel(logger)

	router := NewRouter(store, cat, gw, notifier, health.NewHandler(), newTestConfig(), logger)
	return router, store, cat
}

// productID looks up a seeded product's assigned ID by name.
func productID(t *testing.T, cat *memory.Store, name string) string {
	t.Helper()
	products, err := cat.List(context.Background())
	require.NoError(t, err)
	for _, p := range products {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("product %q not found in catalog", name)
	return ""
}

// doJSON performs a request against the router with a JSON body.
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage         `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Data, "expected data in response: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dst))
}
