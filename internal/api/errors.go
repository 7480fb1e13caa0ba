// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/logging"
	"github.com/csv-insight/backend/internal/upload"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors for consistent error handling

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationError creates a 400 validation error for a specific field
func NewValidationError(field string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("validation failed for field: %s", field),
	}
}

// NewNoValidDataError creates the 400 returned when a file yields no rows
func NewNoValidDataError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "NO_VALID_DATA",
		Message: "No valid data found in the file",
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewPayloadTooLargeError creates a 413 error for oversized uploads
func NewPayloadTooLargeError(cause error) *APIError {
	err := &APIError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "PAYLOAD_TOO_LARGE",
		Message: "uploaded file is too large",
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewProcessingError creates a 500 error carrying the failure text
func NewProcessingError(cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "PROCESSING_ERROR",
		Message: "Error processing file",
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// analysisError maps pipeline and upload errors to API errors
func analysisError(err error) *APIError {
	switch {
	case errors.Is(err, analysis.ErrNoValidData):
		return NewNoValidDataError()
	case errors.Is(err, upload.ErrTooLarge):
		return NewPayloadTooLargeError(err)
	default:
		return NewProcessingError(err)
	}
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = analysisError(err)
	}

	if apiErr.Status >= http.StatusInternalServerError {
		logging.New("api").Error("request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"code", apiErr.Code,
			"error", err,
		)
	}

	// Send JSON response
	if !c.Response().Committed {
		c.JSON(apiErr.Status, apiErr)
	}
}
