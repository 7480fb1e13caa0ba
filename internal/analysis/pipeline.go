// Package analysis runs the upload pipeline: classify, parse, summarize
// and preview.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/logging"
	"github.com/csv-insight/backend/internal/metrics"
	"github.com/csv-insight/backend/internal/models"
	"github.com/csv-insight/backend/internal/parser"
)

// ErrNoValidData is returned when parsing yields no rows.
var ErrNoValidData = errors.New("no valid data found in the file")

// ProcessingError wraps any failure that escapes the pipeline, including a
// recovered panic.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "error processing file: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Options controls one analysis run.
type Options struct {
	// Profile supplies the locale vocabulary. Nil selects locale.Default().
	Profile *locale.Profile
	// Delimiter is the generic parser's field separator. Zero means ','.
	Delimiter rune
	// Charset names the encoding of raw uploads, see Decode.
	Charset string
	// PreviewRows bounds the preview.
	PreviewRows int
	// MetadataScanLines bounds the description search.
	MetadataScanLines int
	// Promotion is the numeric promotion policy for text columns.
	Promotion Promotion
	// Dialect, when set, replaces classification.
	Dialect models.DialectTag
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Profile:           locale.Default(),
		Delimiter:         ',',
		Charset:           CharsetUTF8,
		PreviewRows:       DefaultPreviewRows,
		MetadataScanLines: DefaultMetadataScanLines,
		Promotion:         PromoteAll,
	}
}

// Analyzer runs the pipeline with fixed options. It holds no per-upload
// state and may be shared between goroutines.
type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

// NewAnalyzer fills zero options with defaults.
func NewAnalyzer(opts Options) *Analyzer {
	def := DefaultOptions()
	if opts.Profile == nil {
		opts.Profile = def.Profile
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = def.Delimiter
	}
	if opts.Charset == "" {
		opts.Charset = def.Charset
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = def.PreviewRows
	}
	if opts.MetadataScanLines <= 0 {
		opts.MetadataScanLines = def.MetadataScanLines
	}
	if opts.Promotion == "" {
		opts.Promotion = def.Promotion
	}
	return &Analyzer{opts: opts, logger: logging.New("analysis")}
}

// WithDialect returns an analyzer that skips classification and always
// parses as tag.
func (a *Analyzer) WithDialect(tag models.DialectTag) *Analyzer {
	opts := a.opts
	opts.Dialect = tag
	return &Analyzer{opts: opts, logger: a.logger}
}

// Options returns the effective options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// AnalyzeBytes decodes raw with the configured charset and analyzes it.
func (a *Analyzer) AnalyzeBytes(raw []byte) (*models.Result, error) {
	content, err := Decode(raw, a.opts.Charset)
	if err != nil {
		metrics.RecordAnalysis("undecoded", metrics.OutcomeError, 0)
		return nil, &ProcessingError{Err: err}
	}
	return a.Analyze(content)
}

// Classify returns the dialect the pipeline would use for content.
func (a *Analyzer) Classify(content string) models.DialectTag {
	if a.opts.Dialect != "" {
		return a.opts.Dialect
	}
	return parser.Classify(content, a.opts.Profile)
}

// Analyze runs the pipeline on decoded text. It returns ErrNoValidData
// when nothing could be parsed and *ProcessingError for anything else.
func (a *Analyzer) Analyze(content string) (res *models.Result, err error) {
	start := time.Now()
	tag := models.DialectGeneric

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis panicked", "dialect", tag, "panic", r, "stack", string(debug.Stack()))
			res, err = nil, &ProcessingError{Err: fmt.Errorf("%v", r)}
		}
		metrics.RecordAnalysis(string(tag), outcome(err), time.Since(start))
	}()

	tag = a.Classify(content)
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoValidData
	}
	p := parser.ForDialect(tag, parser.Options{
		Profile:   a.opts.Profile,
		Delimiter: a.opts.Delimiter,
	})

	ds, dropped := p.Parse(content)
	for _, d := range dropped {
		a.logger.Debug("record dropped", "dialect", tag, "parser", p.Name(), "line", d.Line, "reason", d.Reason)
	}
	metrics.RecordDropped(string(tag), len(dropped))

	if ds.Empty() {
		return nil, ErrNoValidData
	}

	meta := ExtractMetadata(content, tag, a.opts.Profile, a.opts.MetadataScanLines)
	meta.TotalRows = ds.Len()
	meta.TotalColumns = len(ds.Columns)

	res = &models.Result{
		Success:    true,
		AnalysisID: uuid.NewString(),
		Columns:    append([]string(nil), ds.Columns...),
		Preview:    BuildPreview(ds, a.opts.PreviewRows),
		Statistics: Summarize(ds, a.opts.Promotion),
		Metadata:   meta,
		Shape:      models.Shape{Rows: ds.Len(), Cols: len(ds.Columns)},
		DataType:   tag,
		Dataset:    ds,
	}
	a.logger.Debug("analysis complete",
		"analysis_id", res.AnalysisID,
		"dialect", tag,
		"rows", res.Shape.Rows,
		"cols", res.Shape.Cols,
		"dropped", len(dropped),
	)
	return res, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNoValidData):
		return metrics.OutcomeNoData
	default:
		return metrics.OutcomeError
	}
}
