// Package models contains domain types for the CSV insight service.
package models

import "strings"

// DialectTag identifies the family of loosely-structured text a file belongs to.
type DialectTag string

const (
	DialectFinancialTimeseries DialectTag = "financial-timeseries"
	DialectBudgetLedger        DialectTag = "budget-ledger"
	DialectSales               DialectTag = "sales"
	DialectGeneric             DialectTag = "generic"
)

// AllDialects lists every tag in classifier priority order.
func AllDialects() []DialectTag {
	return []DialectTag{
		DialectFinancialTimeseries,
		DialectBudgetLedger,
		DialectSales,
		DialectGeneric,
	}
}

// ParseDialectTag resolves a user-supplied tag name. The legacy names
// "google_finance" and "budget" are accepted as aliases.
func ParseDialectTag(s string) (DialectTag, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "financial-timeseries", "financial_timeseries", "google_finance", "finance":
		return DialectFinancialTimeseries, true
	case "budget-ledger", "budget_ledger", "budget":
		return DialectBudgetLedger, true
	case "sales":
		return DialectSales, true
	case "generic":
		return DialectGeneric, true
	}
	return "", false
}
