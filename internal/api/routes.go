// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/csv-insight/backend/internal/analysis"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Analyzer       *analysis.Analyzer
	MaxUploadBytes int64
	Version        string
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	Upload UploadHandler
	Sample SampleHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version, deps.Analyzer),
		Upload: NewUploadHandler(deps.Analyzer, deps.MaxUploadBytes),
		Sample: NewSampleHandler(),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	apiGroup := e.Group("/api")
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Analysis
	apiGroup.POST("/upload", handlers.Upload.HandleUploadFile)
	apiGroup.POST("/upload/base64", handlers.Upload.HandleUploadBase64)

	// Samples
	apiGroup.GET("/sample/:type", handlers.Sample.HandleGetSample)
	apiGroup.GET("/dialects", handlers.Sample.HandleListDialects)

	// Paths used by older UI builds
	e.POST("/upload", handlers.Upload.HandleUploadFile)
	e.GET("/sample/:type", handlers.Sample.HandleGetSample)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
