package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/testutil"
	"github.com/csv-insight/backend/internal/upload"
)

func TestHealthHandler_HandleHealth(t *testing.T) {
	handler := NewHealthHandler("1.2.3", analysis.NewAnalyzer(analysis.Options{Charset: analysis.CharsetAuto}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.HandleHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "1.2.3", response["version"])
	assert.Equal(t, "ru", response["locale_profile"])
	assert.Equal(t, "auto", response["encoding"])
}

func TestSampleHandler_HandleGetSample(t *testing.T) {
	tests := []struct {
		name        string
		sampleType  string
		wantErr     bool
		wantColumns []interface{}
	}{
		{
			name:        "financial timeseries",
			sampleType:  "financial-timeseries",
			wantColumns: []interface{}{"Date", "Open", "High", "Low", "Close", "Volume"},
		},
		{
			name:        "legacy finance alias",
			sampleType:  "google_finance",
			wantColumns: []interface{}{"Date", "Open", "High", "Low", "Close", "Volume"},
		},
		{
			name:        "budget ledger",
			sampleType:  "budget",
			wantColumns: []interface{}{"Category", "Type", "Amount"},
		},
		{
			name:       "known dialect without sample",
			sampleType: "sales",
			wantErr:    true,
		},
		{
			name:       "unknown type",
			sampleType: "unknown",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSampleHandler()

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath("/api/sample/:type")
			c.SetParamNames("type")
			c.SetParamValues(tt.sampleType)

			err := handler.HandleGetSample(c)

			if tt.wantErr {
				assertAPIError(t, err, http.StatusNotFound, "NOT_FOUND")
				return
			}
			require.NoError(t, err)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.wantColumns, response["columns"])
			assert.Len(t, response["data"], 3)
		})
	}
}

func TestSampleHandler_HandleListDialects(t *testing.T) {
	handler := NewSampleHandler()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/dialects", nil), rec)

	require.NoError(t, handler.HandleListDialects(c))

	var response map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"financial-timeseries", "budget-ledger", "sales", "generic"}, response["dialects"])
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", NewValidationError("file"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"no valid data", fmt.Errorf("wrapped: %w", analysis.ErrNoValidData), http.StatusBadRequest, "NO_VALID_DATA"},
		{"too large", upload.ErrTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "PROCESSING_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var response APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.wantCode, response.Code)
		})
	}
}

func TestProcessingErrorDetails(t *testing.T) {
	err := analysisError(&analysis.ProcessingError{Err: errors.New("bad bytes")})
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Error processing file", err.Message)
	assert.Equal(t, "error processing file: bad bytes", err.Details)
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	SetupMiddleware(e)
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Analyzer:       analysis.NewAnalyzer(analysis.Options{}),
		MaxUploadBytes: testMaxUpload,
		Version:        "test",
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"api health", http.MethodGet, "/api/health", http.StatusOK},
		{"dialects", http.MethodGet, "/api/dialects", http.StatusOK},
		{"sample", http.MethodGet, "/api/sample/budget-ledger", http.StatusOK},
		{"legacy sample", http.MethodGet, "/sample/google_finance", http.StatusOK},
		{"missing sample", http.MethodGet, "/api/sample/nope", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("upload", func(t *testing.T) {
		for _, path := range []string{"/api/upload", "/upload"} {
			body, contentType := testutil.MultipartBody(t, "file", "prices.csv", []byte(testutil.FinanceRecord))
			req := httptest.NewRequest(http.MethodPost, path, body)
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.True(t, strings.Contains(rec.Body.String(), `"data_type":"financial-timeseries"`), path)
		}
	})
}
