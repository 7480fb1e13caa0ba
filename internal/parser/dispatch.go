package parser

import (
	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/models"
)

// Options configures the parsers built by ForDialect.
type Options struct {
	// Profile supplies the locale vocabulary. Nil selects locale.Default().
	Profile *locale.Profile
	// Delimiter is the field separator for the generic parser. Zero means ','.
	Delimiter rune
}

// ForDialect returns the parser for tag. Sales and generic content, and any
// unknown tag, go to the generic parser.
func ForDialect(tag models.DialectTag, opts Options) Parser {
	profile := opts.Profile
	if profile == nil {
		profile = locale.Default()
	}

	switch tag {
	case models.DialectFinancialTimeseries:
		return NewFinanceParser(profile)
	case models.DialectBudgetLedger:
		return NewBudgetParser(profile)
	default:
		return NewGenericParser(opts.Delimiter)
	}
}
