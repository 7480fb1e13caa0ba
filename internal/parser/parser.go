package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/csv-insight/backend/internal/models"
)

// Parser turns raw text of one dialect into a rectangular dataset.
//
// Parse never fails: records that cannot be converted are dropped and
// reported in the returned ParseError list, which is diagnostic only.
type Parser interface {
	// Name returns the unique name of the parser.
	Name() string
	// Parse extracts a dataset from the full decoded text.
	Parse(content string) (*models.Dataset, []*models.ParseError)
}

// Common utilities for parsing

// naTokens are the cell spellings read as missing values by the table reader.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNA reports whether a raw cell denotes a missing value.
func IsNA(raw string) bool {
	_, ok := naTokens[strings.TrimSpace(raw)]
	return ok
}

// ParseInteger parses a plain base-10 integer with optional sign.
func ParseInteger(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNumber parses a finite floating-point number.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// stripSpaces removes ASCII and Unicode no-break spaces used as
// thousands separators.
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
}

// splitLines splits content on newlines and drops trailing carriage returns.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
