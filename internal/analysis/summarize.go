package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/csv-insight/backend/internal/models"
	"github.com/csv-insight/backend/internal/parser"
)

// Promotion decides when a text column is summarized as numeric.
type Promotion string

const (
	// PromoteAll requires every non-missing value to be numeric.
	PromoteAll Promotion = "all"
	// PromoteAny needs a single numeric value; the rest are excluded.
	PromoteAny Promotion = "any"
)

// ParsePromotion validates a promotion policy name. Empty means PromoteAll.
func ParsePromotion(s string) (Promotion, error) {
	switch Promotion(strings.ToLower(strings.TrimSpace(s))) {
	case "", PromoteAll:
		return PromoteAll, nil
	case PromoteAny:
		return PromoteAny, nil
	}
	return "", fmt.Errorf("unknown numeric promotion policy %q (want all or any)", s)
}

// mostCommonNone is reported for a categorical column without values.
const mostCommonNone = "N/A"

// Summarize computes one summary per column name. When names repeat, the
// first column with that name is summarized.
func Summarize(ds *models.Dataset, policy Promotion) map[string]models.ColumnSummary {
	out := make(map[string]models.ColumnSummary, len(ds.Columns))
	for i, name := range ds.Columns {
		if ds.ColumnIndex(name) != i {
			continue
		}
		out[name] = SummarizeColumn(ds.Column(i), policy)
	}
	return out
}

// SummarizeColumn classifies a column as datetime, numeric or categorical
// and computes its statistics over non-missing values.
func SummarizeColumn(values []models.Value, policy Promotion) models.ColumnSummary {
	present := make([]models.Value, 0, len(values))
	for _, v := range values {
		if v.IsMissing() || (v.Kind == models.KindText && strings.TrimSpace(v.Text) == "") {
			continue
		}
		present = append(present, v)
	}

	if dates := collectDates(present); len(dates) > 0 {
		return summarizeDates(dates)
	}

	nums := make([]float64, 0, len(present))
	for _, v := range present {
		if f, ok := coerceNumber(v); ok {
			nums = append(nums, f)
		}
	}
	numeric := len(nums) > 0
	if policy != PromoteAny {
		numeric = numeric && len(nums) == len(present)
	}
	if numeric {
		return summarizeNumbers(nums)
	}
	return summarizeCategories(present)
}

func collectDates(values []models.Value) []time.Time {
	var dates []time.Time
	for _, v := range values {
		if v.Kind == models.KindDate {
			dates = append(dates, v.Date)
		}
	}
	return dates
}

func coerceNumber(v models.Value) (float64, bool) {
	switch v.Kind {
	case models.KindNumber:
		return v.Num, true
	case models.KindInteger:
		return float64(v.Int), true
	case models.KindText:
		return parser.ParseNumber(v.Text)
	}
	return 0, false
}

func summarizeDates(dates []time.Time) models.ColumnSummary {
	earliest, latest := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
	}
	return models.ColumnSummary{
		Type:  models.ColumnDatetime,
		Count: len(dates),
		Dates: &models.DateRange{Earliest: earliest, Latest: latest},
	}
}

func summarizeNumbers(nums []float64) models.ColumnSummary {
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	var sum float64
	for _, x := range nums {
		sum += x
	}
	n := float64(len(nums))
	mean := sum / n

	stats := &models.NumericStats{
		Mean:   mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(nums) > 1 {
		var ss float64
		for _, x := range nums {
			ss += (x - mean) * (x - mean)
		}
		std := math.Sqrt(ss / (n - 1))
		stats.Std = &std
	}
	return models.ColumnSummary{
		Type:    models.ColumnNumeric,
		Count:   len(nums),
		Numeric: stats,
	}
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// summarizeCategories breaks mode ties by first appearance.
func summarizeCategories(values []models.Value) models.ColumnSummary {
	counts := make(map[string]int, len(values))
	order := make([]string, 0)
	for _, v := range values {
		key := v.String()
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	mostCommon, best := mostCommonNone, 0
	for _, key := range order {
		if counts[key] > best {
			mostCommon, best = key, counts[key]
		}
	}
	return models.ColumnSummary{
		Type:  models.ColumnCategorical,
		Count: len(values),
		Categorical: &models.CategoricalStats{
			UniqueCount: len(order),
			MostCommon:  mostCommon,
		},
	}
}
