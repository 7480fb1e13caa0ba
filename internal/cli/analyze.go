package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/config"
	"github.com/csv-insight/backend/internal/models"
	"github.com/csv-insight/backend/internal/upload"
)

// analyzeFlags override processing settings for one invocation.
type analyzeFlags struct {
	format      string
	dialect     string
	delimiter   string
	previewRows int
	profile     string
	encoding    string
	promotion   string
}

// register adds the flags shared by analyze and classify.
func (f *analyzeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "locale profile name or YAML path")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "input charset: utf-8, windows-1251 or auto")
}

// apply copies set flags over cfg.
func (f *analyzeFlags) apply(cmd *cobra.Command, cfg *config.AppConfig) error {
	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		if _, err := config.ParseDelimiter(f.delimiter); err != nil {
			return err
		}
		cfg.Processing.Delimiter = f.delimiter
	}
	if flags.Changed("preview-rows") {
		cfg.Processing.PreviewRows = f.previewRows
	}
	if flags.Changed("profile") {
		cfg.Processing.LocaleProfile = f.profile
	}
	if flags.Changed("encoding") {
		cfg.Processing.Encoding = f.encoding
	}
	if flags.Changed("promotion") {
		cfg.Processing.NumericPromotion = f.promotion
	}
	return nil
}

func (a *app) analyzer(cmd *cobra.Command, f *analyzeFlags) (*analysis.Analyzer, error) {
	cfg := *a.cfg
	if err := f.apply(cmd, &cfg); err != nil {
		return nil, err
	}
	opts, err := cfg.AnalysisOptions()
	if err != nil {
		return nil, err
	}
	if f.dialect != "" {
		tag, ok := models.ParseDialectTag(f.dialect)
		if !ok {
			return nil, fmt.Errorf("unknown dialect %q", f.dialect)
		}
		opts.Dialect = tag
	}
	return analysis.NewAnalyzer(opts), nil
}

func newAnalyzeCmd(a *app) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a file and print its summary",
		Long:  `Analyze reads a file ("-" for stdin), detects its dialect and prints statistics and a preview.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.format != "markdown" && f.format != "json" {
				return fmt.Errorf("unsupported format %q (use markdown or json)", f.format)
			}
			analyzer, err := a.analyzer(cmd, f)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), args[0], a.cfg.Processing.MaxUploadBytes)
			if err != nil {
				return err
			}
			res, err := analyzer.AnalyzeBytes(raw)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), f.format, displayName(args[0]), res)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", "skip detection and parse as this dialect")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", `generic table delimiter, e.g. ";" or "tab"`)
	cmd.Flags().StringVarP(&f.format, "format", "f", "markdown", "output format: markdown or json")
	cmd.Flags().IntVar(&f.previewRows, "preview-rows", 0, "number of preview rows (overrides config)")
	cmd.Flags().StringVar(&f.promotion, "promotion", "", "numeric promotion policy: all or any")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Print the detected dialect of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := a.analyzer(cmd, f)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), args[0], a.cfg.Processing.MaxUploadBytes)
			if err != nil {
				return err
			}
			content, err := analysis.Decode(raw, analyzer.Options().Charset)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), analyzer.Classify(content))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func readInput(stdin io.Reader, path string, limit int64) ([]byte, error) {
	if path == "-" {
		return upload.Read(stdin, limit)
	}
	data, err := upload.ReadFile(path, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}

func writeResult(w io.Writer, format, name string, res *models.Result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err := io.WriteString(w, analysis.Markdown(name, res))
	return err
}
