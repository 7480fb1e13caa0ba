package locale

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()
	require.NotNil(t, p)
	assert.Equal(t, "ru", p.Name)
	assert.Len(t, p.Months, 12)
	assert.Contains(t, p.CurrencySymbols, "₽")
	assert.Same(t, p, Default(), "default profile should be compiled once")
}

func TestLoad(t *testing.T) {
	t.Run("empty name selects default", func(t *testing.T) {
		p, err := Load("")
		require.NoError(t, err)
		assert.Same(t, Default(), p)
	})

	t.Run("embedded by name", func(t *testing.T) {
		p, err := Load("ru")
		require.NoError(t, err)
		assert.Equal(t, "ru", p.Name)
	})

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "en.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testProfileYAML), 0644))

		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "en-test", p.Name)
		assert.Equal(t, []string{"monthly budget", "expenses"}, p.BudgetMarkers, "markers are lower-cased")

		amount, ok := p.FindAmount("Rent, -1 200 $", true)
		require.True(t, ok)
		assert.Equal(t, -1200.0, amount)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown name lists built-in profiles", func(t *testing.T) {
		_, err := Load("xx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `locale profile "xx"`)
		assert.Contains(t, err.Error(), "("+DefaultProfileName+")")
	})
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "no currency",
			mutate:  func(s string) string { return strings.Replace(s, `currency_symbols: ["$", "usd"]`, "currency_symbols: []", 1) },
			wantErr: "currency symbol",
		},
		{
			name:    "eleven months",
			mutate:  func(s string) string { return strings.Replace(s, "  - {abbr: \"dez\", canonical: Dec}\n", "", 1) },
			wantErr: "12 entries",
		},
		{
			name:    "duplicate month",
			mutate:  func(s string) string { return strings.Replace(s, "canonical: Dec", "canonical: Nov", 1) },
			wantErr: "mapped twice",
		},
		{
			name:    "unknown canonical month",
			mutate:  func(s string) string { return strings.Replace(s, "canonical: Dec", "canonical: December", 1) },
			wantErr: "bad month entry",
		},
		{
			name:    "no finance header",
			mutate:  func(s string) string { return strings.Replace(s, `finance_header: "Date,Open,High,Low,Close,Volume"`, "", 1) },
			wantErr: "finance_header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.mutate(testProfileYAML)))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfile)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("months: [unterminated"))
		assert.Error(t, err)
	})
}

func TestFindAmount(t *testing.T) {
	p := Default()
	tests := []struct {
		in     string
		signed bool
		want   float64
		ok     bool
	}{
		{"100000 ₽", false, 100000, true},
		{"Начальная сумма: 50 000 ₽", false, 50000, true},
		{"12 345 ₽", false, 12345, true},
		{"-1 500 ₽", true, -1500, true},
		{"+2 000₽", true, 2000, true},
		{"-1 500 ₽", false, 1500, true},
		{"100000", false, 0, false},
		{"no digits ₽", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := p.FindAmount(tt.in, tt.signed)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTranslateMonths(t *testing.T) {
	p := Default()
	assert.Equal(t, "7 Oct 2024", p.TranslateMonths("7 окт. 2024"))
	assert.Equal(t, "1 May 2024", p.TranslateMonths("1 мая 2024"))
	assert.Equal(t, "Oct 7, 2024", p.TranslateMonths("Oct 7, 2024"))
}

func TestDescribe(t *testing.T) {
	p := Default()
	assert.Equal(t, "Данные акций Google Finance",
		p.Describe("financial-timeseries", []string{"Экспорт", "Google Финанс: GOOG"}))
	assert.Equal(t, "", p.Describe("financial-timeseries", []string{"Date,Open"}))
	assert.Equal(t, "Месячный бюджет", p.Describe("budget-ledger", []string{"МЕСЯЧНЫЙ БЮДЖЕТ 2024"}))
	assert.Equal(t, "Бюджетные данные", p.Describe("budget-ledger", nil))
	assert.Equal(t, "", p.Describe("generic", []string{"месячный бюджет"}))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("итого расходы", []string{"доходы", "расходы"}))
	assert.False(t, ContainsAny("итого", []string{"доходы"}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestNames(t *testing.T) {
	assert.Contains(t, Names(), DefaultProfileName)
}

const testProfileYAML = `name: en-test
finance_markers: ["Google Finance"]
finance_header: "Date,Open,High,Low,Close,Volume"
budget_markers: ["Monthly Budget", "Expenses"]
sales_markers: ["sales"]
initial_amount_markers: ["starting balance"]
category_keywords: ["expenses", "income", "rent"]
expense_keywords: ["expense", "rent"]
income_keywords: ["income"]
currency_symbols: ["$", "usd"]
months:
  - {abbr: "jan", canonical: Jan}
  - {abbr: "feb", canonical: Feb}
  - {abbr: "mrz", canonical: Mar}
  - {abbr: "apr", canonical: Apr}
  - {abbr: "mai", canonical: May}
  - {abbr: "jun", canonical: Jun}
  - {abbr: "jul", canonical: Jul}
  - {abbr: "aug", canonical: Aug}
  - {abbr: "sep", canonical: Sep}
  - {abbr: "okt", canonical: Oct}
  - {abbr: "nov", canonical: Nov}
  - {abbr: "dez", canonical: Dec}
`
