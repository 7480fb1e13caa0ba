// handlers_health.go - Liveness and build info
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csv-insight/backend/internal/analysis"
)

// HealthHandlerImpl reports liveness plus the settings uploads are analyzed with
type HealthHandlerImpl struct {
	version       string
	localeProfile string
	charset       string
}

// NewHealthHandler creates a health handler describing analyzer
func NewHealthHandler(version string, analyzer *analysis.Analyzer) HealthHandler {
	opts := analyzer.Options()
	return &HealthHandlerImpl{
		version:       version,
		localeProfile: opts.Profile.Name,
		charset:       opts.Charset,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        h.version,
		"locale_profile": h.localeProfile,
		"encoding":       h.charset,
	})
}
