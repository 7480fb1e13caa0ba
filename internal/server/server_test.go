package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/config"
	"github.com/csv-insight/backend/internal/testutil"
)

func newTestServer(t *testing.T, mutate func(*config.AppConfig)) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Advanced.EnableRequestLogging = false
	if mutate != nil {
		mutate(cfg)
	}
	srv, err := New(cfg, analysis.NewAnalyzer(analysis.Options{}), "test")
	require.NoError(t, err)
	return srv
}

func upload(t *testing.T, e *echo.Echo, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := testutil.MultipartBody(t, "file", "data.csv", []byte(content))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNew_Routes(t *testing.T) {
	srv := newTestServer(t, nil)
	e := srv.Echo()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"health", "/health", http.StatusOK},
		{"api health", "/api/health", http.StatusOK},
		{"dialects", "/api/dialects", http.StatusOK},
		{"metrics", "/metrics", http.StatusOK},
		{"ui", "/", http.StatusOK},
		{"unknown api path", "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestNew_RequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestNew_MetricsDisabled(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.AppConfig) {
		cfg.Advanced.EnableMetrics = false
	})

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Falls through to the UI
	assert.Contains(t, rec.Body.String(), "<title>CSV Insight</title>")
}

func TestNew_Upload(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := upload(t, srv.Echo(), testutil.GenericTable)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data_type":"generic"`)

	rec = upload(t, srv.Echo(), "   ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NO_VALID_DATA"`)
}

func TestNew_BodyLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.AppConfig) {
		cfg.Server.BodyLimit = "1K"
	})

	rec := upload(t, srv.Echo(), string(make([]byte, 4096)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNew_RateLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.AppConfig) {
		cfg.Server.RateLimit = 1
	})

	first := upload(t, srv.Echo(), testutil.GenericTable)
	second := upload(t, srv.Echo(), testutil.GenericTable)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Only uploads are limited
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Serve(t *testing.T) {
	srv := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/api/health", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestBurst(t *testing.T) {
	assert.Equal(t, 1, burst(0.5))
	assert.Equal(t, 20, burst(20))
}
