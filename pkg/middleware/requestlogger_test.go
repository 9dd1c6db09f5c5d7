package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarker/unishopping/pkg/logger"
)

func TestRequestLogger_StoresEnrichedLoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("storefront", "info", &buf)

	var inner http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).InfoContext(r.Context(), "from handler")
	}

	h := RequestLogging(logger.NewWithWriter("storefront", "error", &bytes.Buffer{}))(
		RequestLogger(base)(inner),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-ID", "sess-789")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "from handler", m["msg"])
	assert.Equal(t, "sess-789", m["session_id"])
	assert.NotEmpty(t, m["correlation_id"])
}

func TestRequestLogger_NoSessionHeader(t *testing.T) {
	var buf bytes.Buffer
	base := logger.NewWithWriter("storefront", "info", &buf)

	var inner http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("from handler")
	}

	h := RequestLogger(base)(inner)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	_, hasSession := m["session_id"]
	assert.False(t, hasSession)
}

func TestRequestLogging_SetsCorrelationHeader(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter("storefront", "info", &buf)

	h := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, logger.CorrelationIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	assert.Contains(t, buf.String(), `"status":204`)
}

func TestRequestLogging_PropagatesIncomingCorrelationID(t *testing.T) {
	l := logger.NewWithWriter("storefront", "error", &bytes.Buffer{})

	h := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-incoming")
	h.ServeHTTP(rec, req)

	assert.Equal(t, "corr-incoming", rec.Header().Get("X-Correlation-ID"))
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))

	h := Recovery(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
