// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// UploadHandler analyzes uploaded files
type UploadHandler interface {
	HandleUploadFile(c echo.Context) error
	HandleUploadBase64(c echo.Context) error
}

// SampleHandler serves built-in example datasets
type SampleHandler interface {
	HandleGetSample(c echo.Context) error
	HandleListDialects(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
