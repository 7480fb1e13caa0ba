package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/models"
)

// financeDateLayout is "month-abbreviation day, year" after month translation.
const financeDateLayout = "Jan 2, 2006"

// FinanceColumns are the columns of a financial-timeseries dataset.
var FinanceColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// FinanceParser handles price-history exports.
// Format: a free-form preamble followed by "Date,Open,High,Low,Close,Volume"
// and one record per line.
type FinanceParser struct {
	profile *locale.Profile
	header  string
}

func NewFinanceParser(profile *locale.Profile) *FinanceParser {
	return &FinanceParser{
		profile: profile,
		header:  strings.ToLower(profile.FinanceHeader),
	}
}

func (p *FinanceParser) Name() string {
	return "financial_timeseries"
}

// Parse reads every record after the header line. Records with a bad date,
// a bad number or fewer than six fields are dropped.
func (p *FinanceParser) Parse(content string) (*models.Dataset, []*models.ParseError) {
	ds := models.NewDataset(FinanceColumns...)
	lines := splitLines(strings.TrimSpace(content))

	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), p.header) {
			start = i
			break
		}
	}
	if start < 0 {
		return ds, nil
	}

	parseErrors := make([]*models.ParseError, 0)
	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := p.parseRecord(line)
		if err != nil {
			parseErrors = append(parseErrors, &models.ParseError{
				Line:    i + 1,
				Content: line,
				Reason:  err.Error(),
			})
			continue
		}
		ds.Append(row)
	}
	return ds, parseErrors
}

func (p *FinanceParser) parseRecord(line string) (models.Row, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("malformed record: %w", err)
	}
	// A trailing delimiter leaves empty fields after Volume
	for len(fields) > len(FinanceColumns) && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) < len(FinanceColumns) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(FinanceColumns), len(fields))
	}

	// An unquoted date such as "Oct 7, 2024" spills over several fields;
	// the last five are always the prices and volume.
	n := len(fields)
	date, err := p.parseDate(strings.Join(fields[:n-5], ","))
	if err != nil {
		return nil, err
	}

	row := make(models.Row, 0, len(FinanceColumns))
	row = append(row, models.Date(date))
	for i, raw := range fields[n-5 : n-1] {
		f, ok := parsePrice(raw)
		if !ok {
			return nil, fmt.Errorf("invalid %s value %q", FinanceColumns[i+1], raw)
		}
		row = append(row, models.Number(f))
	}
	volume, err := parseVolume(fields[n-1])
	if err != nil {
		return nil, err
	}
	return append(row, models.Integer(volume)), nil
}

func (p *FinanceParser) parseDate(raw string) (time.Time, error) {
	s := p.profile.TranslateMonths(raw)
	s = strings.Join(strings.Fields(s), " ")
	t, err := time.Parse(financeDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

// parsePrice accepts decimal commas and space-separated thousands.
func parsePrice(raw string) (float64, bool) {
	return ParseNumber(stripSpaces(strings.ReplaceAll(raw, ",", ".")))
}

var errNegativeVolume = errors.New("negative volume")

func parseVolume(raw string) (int64, error) {
	v, ok := ParseInteger(stripSpaces(raw))
	if !ok {
		return 0, fmt.Errorf("invalid Volume value %q", raw)
	}
	if v < 0 {
		return 0, errNegativeVolume
	}
	return v, nil
}
