package analysis

import (
	"fmt"
	"strings"

	"github.com/csv-insight/backend/internal/models"
)

// Markdown renders a result as a compact plain-text report.
func Markdown(name string, res *models.Result) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if name != "" {
		fmt.Fprintf(&b, "File: %s\n", name)
	}
	fmt.Fprintf(&b, "Dialect: %s\n", res.DataType)
	if res.Metadata.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", res.Metadata.Description)
	}
	fmt.Fprintf(&b, "Rows: %d\n", res.Shape.Rows)
	fmt.Fprintf(&b, "Columns: %d\n\n", res.Shape.Cols)

	b.WriteString("[SCHEMA]\n")
	seen := make(map[string]bool, len(res.Columns))
	for _, col := range res.Columns {
		if seen[col] {
			continue
		}
		seen[col] = true
		s, ok := res.Statistics[col]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s (count %d)", safeCell(col), s.Type, s.Count)
		switch {
		case s.Numeric != nil:
			fmt.Fprintf(&b, " - min %.4g, max %.4g, mean %.4g, median %.4g", s.Numeric.Min, s.Numeric.Max, s.Numeric.Mean, s.Numeric.Median)
			if s.Numeric.Std != nil {
				fmt.Fprintf(&b, ", std %.4g", *s.Numeric.Std)
			}
		case s.Dates != nil:
			fmt.Fprintf(&b, " - %s to %s", s.Dates.Earliest.Format(models.DateLayout), s.Dates.Latest.Format(models.DateLayout))
		case s.Categorical != nil:
			fmt.Fprintf(&b, " - unique=%d, top: %s", s.Categorical.UniqueCount, safeCell(s.Categorical.MostCommon))
		}
		b.WriteString("\n")
	}

	if len(res.Preview) > 0 {
		b.WriteString("\n[PREVIEW]\n| ")
		b.WriteString(strings.Join(mapCells(res.Columns, safeCell), " | "))
		b.WriteString(" |\n|")
		b.WriteString(strings.Repeat(" --- |", len(res.Columns)))
		b.WriteString("\n")
		for _, row := range res.Preview {
			cells := make([]string, len(res.Columns))
			for i, col := range res.Columns {
				if v := row[col]; v != nil {
					cells[i] = safeCell(fmt.Sprint(v))
				}
			}
			b.WriteString("| ")
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func mapCells(in []string, f func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = f(s)
	}
	return out
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
