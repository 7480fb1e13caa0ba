package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/csv-insight/backend/internal/models"
)

var errNoHeader = errors.New("no header row")

// GenericParser reads ordinary delimited tables. When the table reader
// rejects the input it falls back to scanning lines into synthetic
// Column_N columns, so it never fails on malformed text.
type GenericParser struct {
	delimiter rune
}

func NewGenericParser(delimiter rune) *GenericParser {
	if delimiter == 0 {
		delimiter = ','
	}
	return &GenericParser{delimiter: delimiter}
}

func (p *GenericParser) Name() string {
	return "generic"
}

func (p *GenericParser) Parse(content string) (*models.Dataset, []*models.ParseError) {
	if strings.TrimSpace(content) == "" {
		return models.NewDataset(), nil
	}

	ds, err := p.parseTable(content)
	if err == nil && !ds.Empty() {
		return ds, nil
	}

	var parseErrors []*models.ParseError
	if err != nil {
		parseErrors = append(parseErrors, &models.ParseError{
			Line:   lineOf(err),
			Reason: fmt.Sprintf("table reader: %v", err),
		})
	}
	return p.scanLines(content), parseErrors
}

// parseTable treats the first record as the header and infers one type
// per column: integer, then number, then text. Quoting is strict, so a
// stray quote is an error and Parse falls back to scanLines.
func (p *GenericParser) parseTable(content string) (*models.Dataset, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = p.delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, err
	}
	header = uniqueHeader(header)
	width := len(header)

	var body [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > width {
			line, _ := r.FieldPos(0)
			return nil, &csv.ParseError{
				StartLine: line,
				Line:      line,
				Err:       fmt.Errorf("expected %d fields, saw %d", width, len(rec)),
			}
		}
		body = append(body, rec)
	}

	ds := models.NewDataset(header...)
	pool := newTextPool()
	cols := make([][]models.Value, width)
	for c := 0; c < width; c++ {
		raw := make([]string, len(body))
		for i, rec := range body {
			if c < len(rec) {
				raw[i] = rec[c]
			}
		}
		cols[c] = inferColumn(raw, pool)
	}
	for i := range body {
		row := make(models.Row, width)
		for c := range cols {
			row[c] = cols[c][i]
		}
		ds.Append(row)
	}
	return ds, nil
}

// inferColumn converts raw cells to the narrowest kind every non-missing
// cell satisfies.
func inferColumn(raw []string, pool *textPool) []models.Value {
	out := make([]models.Value, len(raw))
	allInt, allNum := true, true
	for _, s := range raw {
		if IsNA(s) {
			continue
		}
		if _, ok := ParseInteger(s); !ok {
			allInt = false
		}
		if _, ok := ParseNumber(s); !ok {
			allNum = false
			break
		}
	}

	for i, s := range raw {
		switch {
		case IsNA(s):
			out[i] = models.Missing()
		case allInt:
			n, _ := ParseInteger(s)
			out[i] = models.Integer(n)
		case allNum:
			f, _ := ParseNumber(s)
			out[i] = models.Number(f)
		default:
			out[i] = pool.text(s)
		}
	}
	return out
}

// uniqueHeader names blank headers "Unnamed: i" and suffixes repeated
// names with ".1", ".2", ...
func uniqueHeader(names []string) []string {
	out := make([]string, len(names))
	counts := make(map[string]int, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cur := counts[name]
		for cur > 0 {
			counts[name] = cur + 1
			name = fmt.Sprintf("%s.%d", name, cur)
			cur = counts[name]
		}
		out[i] = name
		counts[name] = cur + 1
	}
	return out
}

// scanLines starts at the first line with more than one field and keeps
// every such line as a row of trimmed text cells.
func (p *GenericParser) scanLines(content string) *models.Dataset {
	sep := string(p.delimiter)
	lines := splitLines(strings.TrimSpace(content))

	start := 0
	for i, line := range lines {
		if len(strings.Split(line, sep)) > 1 {
			start = i
			break
		}
	}

	var rows [][]string
	width := 0
	for _, line := range lines[start:] {
		cells := strings.Split(line, sep)
		if len(cells) < 2 {
			continue
		}
		rows = append(rows, cells)
		width = max(width, len(cells))
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = fmt.Sprintf("Column_%d", i)
	}
	ds := models.NewDataset(columns...)
	pool := newTextPool()
	for _, cells := range rows {
		row := make(models.Row, width)
		for i := range row {
			row[i] = models.Missing()
			if i < len(cells) {
				if c := strings.TrimSpace(cells[i]); c != "" {
					row[i] = pool.text(c)
				}
			}
		}
		ds.Append(row)
	}
	return ds
}

func lineOf(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
