package parser

import (
	"strings"

	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/models"
)

// Classify picks the dialect of content. Checks run in priority order and
// the first match wins; anything unrecognized is generic.
func Classify(content string, profile *locale.Profile) models.DialectTag {
	lowered := strings.ToLower(content)

	switch {
	case locale.ContainsAny(lowered, profile.FinanceMarkers),
		strings.Contains(lowered, strings.ToLower(profile.FinanceHeader)):
		return models.DialectFinancialTimeseries
	case locale.ContainsAny(lowered, profile.BudgetMarkers):
		return models.DialectBudgetLedger
	case locale.ContainsAny(lowered, profile.SalesMarkers):
		return models.DialectSales
	default:
		return models.DialectGeneric
	}
}
