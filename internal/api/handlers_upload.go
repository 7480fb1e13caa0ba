// handlers_upload.go - File upload and analysis handlers
package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/logging"
	"github.com/csv-insight/backend/internal/models"
	"github.com/csv-insight/backend/internal/upload"
)

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	analyzer       *analysis.Analyzer
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(analyzer *analysis.Analyzer, maxUploadBytes int64) UploadHandler {
	return &UploadHandlerImpl{
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
		logger:         logging.New("api"),
	}
}

// HandleUploadFile analyzes a multipart upload in the "file" field
func (h *UploadHandlerImpl) HandleUploadFile(c echo.Context) error {
	analyzer, err := h.analyzerFor(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return NewValidationError("file")
		}
		return NewBadRequestError("no file uploaded", err)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	data, err := upload.Read(src, h.maxUploadBytes)
	if err != nil {
		return analysisError(err)
	}
	return h.analyze(c, analyzer, file.Filename, data)
}

// HandleUploadBase64 analyzes a file sent as base64 JSON
func (h *UploadHandlerImpl) HandleUploadBase64(c echo.Context) error {
	analyzer, err := h.analyzerFor(c)
	if err != nil {
		return err
	}

	var req uploadFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	// Decode base64 content
	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	data, err := upload.Read(bytes.NewReader(decoded), h.maxUploadBytes)
	if err != nil {
		return analysisError(err)
	}
	return h.analyze(c, analyzer, req.Name, data)
}

func (h *UploadHandlerImpl) analyze(c echo.Context, analyzer *analysis.Analyzer, name string, data []byte) error {
	res, err := analyzer.AnalyzeBytes(data)
	if err != nil {
		h.logger.Info("upload rejected", "file", name, "bytes", len(data), "error", err)
		return analysisError(err)
	}

	h.logger.Info("upload analyzed",
		"file", name,
		"analysis_id", res.AnalysisID,
		"dialect", res.DataType,
		"rows", res.Shape.Rows,
		"cols", res.Shape.Cols,
	)
	return respond(c, http.StatusOK, res)
}

// analyzerFor honors an optional ?dialect= override.
func (h *UploadHandlerImpl) analyzerFor(c echo.Context) (*analysis.Analyzer, error) {
	name := c.QueryParam("dialect")
	if name == "" {
		return h.analyzer, nil
	}
	tag, ok := models.ParseDialectTag(name)
	if !ok {
		return nil, NewBadRequestError("unknown dialect: "+name, nil)
	}
	return h.analyzer.WithDialect(tag), nil
}

// Request/Response types

type uploadFileRequest struct {
	Name string `json:"name"`
	Data string `json:"data"` // Base64-encoded content
}

func (r *uploadFileRequest) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	if r.Data == "" {
		return NewValidationError("data")
	}
	return nil
}
