// Package locale holds the vocabulary tables that drive dialect detection
// and dialect-specific parsing: marker phrases, budget keywords, month
// abbreviations and currency glyphs.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var embedded embed.FS

// DefaultProfileName is the embedded profile used when none is configured.
const DefaultProfileName = "ru"

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid locale profile")

var canonicalMonths = map[string]bool{
	"Jan": true, "Feb": true, "Mar": true, "Apr": true, "May": true, "Jun": true,
	"Jul": true, "Aug": true, "Sep": true, "Oct": true, "Nov": true, "Dec": true,
}

// MonthName maps a source-locale month abbreviation to its canonical
// English abbreviation.
type MonthName struct {
	Abbr      string `yaml:"abbr"`
	Canonical string `yaml:"canonical"`
}

// MetadataMarker attaches a description to files whose leading lines
// contain Phrase.
type MetadataMarker struct {
	Phrase      string `yaml:"phrase"`
	Description string `yaml:"description"`
}

// MetadataRule is the description policy for one dialect.
type MetadataRule struct {
	Default string           `yaml:"default"`
	Markers []MetadataMarker `yaml:"markers"`
}

// Profile is a locale vocabulary. Obtain one through Load, Parse or Default;
// a loaded Profile is immutable and safe for concurrent use.
type Profile struct {
	Name                 string                  `yaml:"name"`
	FinanceMarkers       []string                `yaml:"finance_markers"`
	FinanceHeader        string                  `yaml:"finance_header"`
	BudgetMarkers        []string                `yaml:"budget_markers"`
	SalesMarkers         []string                `yaml:"sales_markers"`
	InitialAmountMarkers []string                `yaml:"initial_amount_markers"`
	CategoryKeywords     []string                `yaml:"category_keywords"`
	ExpenseKeywords      []string                `yaml:"expense_keywords"`
	IncomeKeywords       []string                `yaml:"income_keywords"`
	CurrencySymbols      []string                `yaml:"currency_symbols"`
	Months               []MonthName             `yaml:"months"`
	Metadata             map[string]MetadataRule `yaml:"metadata"`
	Placeholder          []string                `yaml:"placeholder"`

	amount       *regexp.Regexp
	signedAmount *regexp.Regexp
}

var (
	defaultOnce    sync.Once
	defaultProfile *Profile
)

// Default returns the embedded default profile.
func Default() *Profile {
	defaultOnce.Do(func() {
		p, err := loadEmbedded(DefaultProfileName)
		if err != nil {
			panic(fmt.Sprintf("locale: embedded profile %q: %v", DefaultProfileName, err))
		}
		defaultProfile = p
	})
	return defaultProfile
}

// Load resolves nameOrPath to an embedded profile name or a YAML file path.
// An empty string selects the default profile.
func Load(nameOrPath string) (*Profile, error) {
	nameOrPath = strings.TrimSpace(nameOrPath)
	if nameOrPath == "" || nameOrPath == DefaultProfileName {
		return Default(), nil
	}
	if p, err := loadEmbedded(nameOrPath); err == nil {
		return p, nil
	}
	f, err := os.Open(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("locale profile %q is neither a built-in profile (%s) nor a readable file: %w",
			nameOrPath, strings.Join(Names(), ", "), err)
	}
	defer f.Close()
	return Parse(f)
}

// Names lists the embedded profile names.
func Names() []string {
	entries, err := embedded.ReadDir("profiles")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

func loadEmbedded(name string) (*Profile, error) {
	f, err := embedded.Open("profiles/" + name + ".yaml")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a YAML profile, validates it and compiles its matchers.
func Parse(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read locale profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse locale profile: %w", err)
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) compile() error {
	if strings.TrimSpace(p.FinanceHeader) == "" {
		return fmt.Errorf("%w: finance_header is required", ErrInvalidProfile)
	}
	if len(p.CurrencySymbols) == 0 {
		return fmt.Errorf("%w: at least one currency symbol is required", ErrInvalidProfile)
	}
	if len(p.Months) != 12 {
		return fmt.Errorf("%w: months must have 12 entries, got %d", ErrInvalidProfile, len(p.Months))
	}
	seen := make(map[string]bool, 12)
	for _, m := range p.Months {
		if m.Abbr == "" || !canonicalMonths[m.Canonical] {
			return fmt.Errorf("%w: bad month entry %q -> %q", ErrInvalidProfile, m.Abbr, m.Canonical)
		}
		if seen[m.Canonical] {
			return fmt.Errorf("%w: month %s mapped twice", ErrInvalidProfile, m.Canonical)
		}
		seen[m.Canonical] = true
	}

	// Marker matching is case-insensitive; normalize once here.
	for _, list := range []*[]string{
		&p.FinanceMarkers, &p.BudgetMarkers, &p.SalesMarkers, &p.InitialAmountMarkers,
		&p.CategoryKeywords, &p.ExpenseKeywords, &p.IncomeKeywords,
	} {
		*list = lowerAll(*list)
	}
	for tag, rule := range p.Metadata {
		for i := range rule.Markers {
			rule.Markers[i].Phrase = strings.ToLower(rule.Markers[i].Phrase)
		}
		p.Metadata[tag] = rule
	}
	if len(p.Placeholder) < 2 {
		p.Placeholder = []string{"Budget file loaded", "Use extended analysis"}
	}

	glyphs := make([]string, 0, len(p.CurrencySymbols))
	for _, g := range p.CurrencySymbols {
		glyphs = append(glyphs, regexp.QuoteMeta(g))
	}
	const space = `[\s\x{00A0}\x{202F}]`
	suffix := space + `*(?:` + strings.Join(glyphs, "|") + `)`
	p.amount = regexp.MustCompile(`(\d+(?:` + space + `|\d)*)` + suffix)
	p.signedAmount = regexp.MustCompile(`([+-]?\d+(?:` + space + `|\d)*)` + suffix)
	return nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ContainsAny reports whether lowered contains any of the markers.
// Callers pass text already lower-cased.
func ContainsAny(lowered string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// FindAmount locates a currency-suffixed amount in s. When signed is true a
// leading '+' or '-' is accepted; '+' is dropped and '-' kept.
func (p *Profile) FindAmount(s string, signed bool) (float64, bool) {
	re := p.amount
	if signed {
		re = p.signedAmount
	}
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', '\v', '\f', '\u00a0', '\u202f', '+':
			return -1
		}
		return r
	}, m[1])
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// TranslateMonths rewrites source-locale month abbreviations in s to their
// canonical English forms.
func (p *Profile) TranslateMonths(s string) string {
	for _, m := range p.Months {
		s = strings.ReplaceAll(s, m.Abbr, m.Canonical)
	}
	return s
}

// Describe picks the metadata description for tag given the leading lines
// of a file. It returns the rule's default when no marker phrase matches.
func (p *Profile) Describe(tag string, lines []string) string {
	rule, ok := p.Metadata[tag]
	if !ok {
		return ""
	}
	for _, line := range lines {
		lowered := strings.ToLower(line)
		for _, m := range rule.Markers {
			if m.Phrase != "" && strings.Contains(lowered, m.Phrase) {
				return m.Description
			}
		}
	}
	return rule.Default
}
