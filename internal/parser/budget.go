package parser

import (
	"strings"

	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/models"
)

// Record types emitted by the budget parser.
const (
	BudgetTypeInitial  = "Initial amount"
	BudgetTypeExpense  = "Expense"
	BudgetTypeIncome   = "Income"
	BudgetTypeCategory = "Category"

	budgetBalanceCategory = "Balance"

	// initialAmountLookahead is how many lines after the marker may hold the amount.
	initialAmountLookahead = 4
)

// BudgetColumns are the columns of a budget-ledger dataset.
var BudgetColumns = []string{"Type", "Category", "Amount"}

// PlaceholderColumns are used when a budget file yields no ledger records.
var PlaceholderColumns = []string{"Description", "Value"}

// BudgetParser mines household budget spreadsheets for amounts.
// Amounts are recognized by a trailing currency glyph, wherever they sit
// on the line.
type BudgetParser struct {
	profile *locale.Profile
}

func NewBudgetParser(profile *locale.Profile) *BudgetParser {
	return &BudgetParser{profile: profile}
}

func (p *BudgetParser) Name() string {
	return "budget_ledger"
}

// Parse never returns an empty dataset: with no records found it returns
// two placeholder rows instead.
func (p *BudgetParser) Parse(content string) (*models.Dataset, []*models.ParseError) {
	ds := models.NewDataset(BudgetColumns...)
	lines := splitLines(strings.TrimSpace(content))

	for i, line := range lines {
		clean := strings.TrimSpace(line)
		lowered := strings.ToLower(clean)

		switch {
		case locale.ContainsAny(lowered, p.profile.InitialAmountMarkers):
			end := min(i+initialAmountLookahead+1, len(lines))
			for _, candidate := range lines[i:end] {
				if amount, ok := p.profile.FindAmount(candidate, false); ok {
					ds.Append(models.Row{
						models.Text(BudgetTypeInitial),
						models.Text(budgetBalanceCategory),
						models.Number(amount),
					})
					break
				}
			}
		case locale.ContainsAny(lowered, p.profile.CategoryKeywords):
			p.scanCategoryLine(clean, ds)
		}
	}

	if ds.Empty() {
		return p.placeholder(), nil
	}
	return ds, nil
}

// scanCategoryLine emits one record per currency amount on the line, using
// the first cell as the category.
func (p *BudgetParser) scanCategoryLine(line string, ds *models.Dataset) {
	var cells []string
	for _, c := range strings.Split(line, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) < 2 {
		return
	}

	category := cells[0]
	kind := p.classify(category)
	for _, cell := range cells {
		amount, ok := p.profile.FindAmount(cell, true)
		if !ok {
			continue
		}
		ds.Append(models.Row{
			models.Text(kind),
			models.Text(category),
			models.Number(amount),
		})
	}
}

func (p *BudgetParser) classify(category string) string {
	lowered := strings.ToLower(category)
	switch {
	case locale.ContainsAny(lowered, p.profile.ExpenseKeywords):
		return BudgetTypeExpense
	case locale.ContainsAny(lowered, p.profile.IncomeKeywords):
		return BudgetTypeIncome
	default:
		return BudgetTypeCategory
	}
}

func (p *BudgetParser) placeholder() *models.Dataset {
	ds := models.NewDataset(PlaceholderColumns...)
	for _, msg := range p.profile.Placeholder[:2] {
		ds.Append(models.Row{models.Text(msg), models.Integer(1)})
	}
	return ds
}
