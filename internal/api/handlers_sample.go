// handlers_sample.go - Built-in example datasets
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csv-insight/backend/internal/models"
)

// SampleHandlerImpl implements the SampleHandler interface
type SampleHandlerImpl struct {
	samples map[models.DialectTag]models.SamplePayload
}

// NewSampleHandler creates a new sample handler
func NewSampleHandler() SampleHandler {
	return &SampleHandlerImpl{samples: samplePayloads()}
}

// HandleGetSample returns the sample payload for a dialect
func (h *SampleHandlerImpl) HandleGetSample(c echo.Context) error {
	name := c.Param("type")
	tag, ok := models.ParseDialectTag(name)
	if !ok {
		return NewNotFoundError("sample", name)
	}
	sample, ok := h.samples[tag]
	if !ok {
		return NewNotFoundError("sample", name)
	}
	return respond(c, http.StatusOK, sample)
}

// HandleListDialects returns the supported dialect tags in classifier order
func (h *SampleHandlerImpl) HandleListDialects(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"dialects": models.AllDialects(),
	})
}

func samplePayloads() map[models.DialectTag]models.SamplePayload {
	return map[models.DialectTag]models.SamplePayload{
		models.DialectFinancialTimeseries: {
			Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume"},
			Data: []map[string]any{
				{"Date": "2024-10-07", "Open": 169.14, "High": 169.90, "Low": 164.13, "Close": 164.39, "Volume": 14034722},
				{"Date": "2024-10-08", "Open": 165.43, "High": 166.10, "Low": 164.31, "Close": 165.70, "Volume": 11723885},
				{"Date": "2024-10-09", "Open": 164.86, "High": 166.26, "Low": 161.12, "Close": 163.06, "Volume": 19666411},
			},
		},
		models.DialectBudgetLedger: {
			Columns: []string{"Category", "Type", "Amount"},
			Data: []map[string]any{
				{"Category": "Питание", "Type": "Расход", "Amount": 15000},
				{"Category": "Транспорт", "Type": "Расход", "Amount": 5000},
				{"Category": "Зарплата", "Type": "Доход", "Amount": 100000},
			},
		},
	}
}
