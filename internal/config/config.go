// Package config provides YAML-based configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/locale"
)

// EnvPrefix prefixes environment overrides, e.g. CSVINSIGHT_SERVER_PORT.
const EnvPrefix = "CSVINSIGHT"

// DefaultPath is used when no config file is given.
const DefaultPath = "./csvinsight.yaml"

// AppConfig is the root configuration structure.
type AppConfig struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Processing configuration
	Processing ProcessingConfig `mapstructure:"processing" yaml:"processing"`

	// Advanced options
	Advanced AdvancedConfig `mapstructure:"advanced" yaml:"advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port            int     `mapstructure:"port" yaml:"port"`
	BindAddress     string  `mapstructure:"bind_address" yaml:"bind_address"`
	EnableCORS      bool    `mapstructure:"enable_cors" yaml:"enable_cors"`
	AllowOrigins    string  `mapstructure:"allow_origins" yaml:"allow_origins"`
	ReadTimeout     int     `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeout    int     `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	IdleTimeout     int     `mapstructure:"idle_timeout_seconds" yaml:"idle_timeout_seconds"`
	ShutdownTimeout int     `mapstructure:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
	BodyLimit       string  `mapstructure:"body_limit" yaml:"body_limit"`
	RateLimit       float64 `mapstructure:"rate_limit_per_second" yaml:"rate_limit_per_second"`
}

// ProcessingConfig contains parsing and analysis settings
type ProcessingConfig struct {
	PreviewRows       int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	MetadataScanLines int    `mapstructure:"metadata_scan_lines" yaml:"metadata_scan_lines"`
	LocaleProfile     string `mapstructure:"locale_profile" yaml:"locale_profile"`
	Delimiter         string `mapstructure:"delimiter" yaml:"delimiter"`
	Encoding          string `mapstructure:"encoding" yaml:"encoding"`
	NumericPromotion  string `mapstructure:"numeric_promotion" yaml:"numeric_promotion"`
	MaxUploadBytes    int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// AdvancedConfig contains logging and diagnostics options
type AdvancedConfig struct {
	LogLevel             string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat            string `mapstructure:"log_format" yaml:"log_format"`
	EnableRequestLogging bool   `mapstructure:"enable_request_logging" yaml:"enable_request_logging"`
	EnableMetrics        bool   `mapstructure:"enable_metrics" yaml:"enable_metrics"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:            8089,
			BindAddress:     "0.0.0.0",
			EnableCORS:      true,
			AllowOrigins:    "*",
			ReadTimeout:     30,
			WriteTimeout:    30,
			IdleTimeout:     120,
			ShutdownTimeout: 10,
			BodyLimit:       "16M",
			RateLimit:       20,
		},
		Processing: ProcessingConfig{
			PreviewRows:       analysis.DefaultPreviewRows,
			MetadataScanLines: analysis.DefaultMetadataScanLines,
			LocaleProfile:     locale.DefaultProfileName,
			Delimiter:         ",",
			Encoding:          analysis.CharsetUTF8,
			NumericPromotion:  string(analysis.PromoteAll),
			MaxUploadBytes:    16 << 20,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			LogFormat:            "text",
			EnableRequestLogging: true,
			EnableMetrics:        true,
		},
	}
}

// Load reads configuration from configPath, environment and defaults, in
// that order of precedence after the environment. A missing file is
// created with the defaults. An empty path skips the file.
func Load(configPath string) (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if configPath != "" {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			if err := DefaultConfig().Save(configPath); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		}
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &AppConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnvironmentOverrides()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper, c *AppConfig) {
	v.SetDefault("server.port", c.Server.Port)
	v.SetDefault("server.bind_address", c.Server.BindAddress)
	v.SetDefault("server.enable_cors", c.Server.EnableCORS)
	v.SetDefault("server.allow_origins", c.Server.AllowOrigins)
	v.SetDefault("server.read_timeout_seconds", c.Server.ReadTimeout)
	v.SetDefault("server.write_timeout_seconds", c.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout_seconds", c.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout_seconds", c.Server.ShutdownTimeout)
	v.SetDefault("server.body_limit", c.Server.BodyLimit)
	v.SetDefault("server.rate_limit_per_second", c.Server.RateLimit)

	v.SetDefault("processing.preview_rows", c.Processing.PreviewRows)
	v.SetDefault("processing.metadata_scan_lines", c.Processing.MetadataScanLines)
	v.SetDefault("processing.locale_profile", c.Processing.LocaleProfile)
	v.SetDefault("processing.delimiter", c.Processing.Delimiter)
	v.SetDefault("processing.encoding", c.Processing.Encoding)
	v.SetDefault("processing.numeric_promotion", c.Processing.NumericPromotion)
	v.SetDefault("processing.max_upload_bytes", c.Processing.MaxUploadBytes)

	v.SetDefault("advanced.log_level", c.Advanced.LogLevel)
	v.SetDefault("advanced.log_format", c.Advanced.LogFormat)
	v.SetDefault("advanced.enable_request_logging", c.Advanced.EnableRequestLogging)
	v.SetDefault("advanced.enable_metrics", c.Advanced.EnableMetrics)
}

// Save writes the configuration as YAML.
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# CSV Insight configuration\n# This file is auto-generated on first run\n\n")
	if err := os.WriteFile(configPath, append(header, output...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// applyEnvironmentOverrides honors the conventional PORT variable.
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
}

// Validate checks values that would otherwise fail at first use.
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := analysis.ParsePromotion(c.Processing.NumericPromotion); err != nil {
		return err
	}
	return nil
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// AllowOriginList splits the comma-separated CORS origins.
func (c *AppConfig) AllowOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.Server.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// DelimiterRune resolves the configured generic-table delimiter. "tab"
// and "\t" both mean a tab character.
func (c *AppConfig) DelimiterRune() (rune, error) {
	return ParseDelimiter(c.Processing.Delimiter)
}

// ParseDelimiter resolves a delimiter name to a single rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r[0], nil
}

// AnalysisOptions builds pipeline options, loading the locale profile.
func (c *AppConfig) AnalysisOptions() (analysis.Options, error) {
	profile, err := locale.Load(c.Processing.LocaleProfile)
	if err != nil {
		return analysis.Options{}, err
	}
	delim, err := c.DelimiterRune()
	if err != nil {
		return analysis.Options{}, err
	}
	promotion, err := analysis.ParsePromotion(c.Processing.NumericPromotion)
	if err != nil {
		return analysis.Options{}, err
	}
	return analysis.Options{
		Profile:           profile,
		Delimiter:         delim,
		Charset:           c.Processing.Encoding,
		PreviewRows:       c.Processing.PreviewRows,
		MetadataScanLines: c.Processing.MetadataScanLines,
		Promotion:         promotion,
	}, nil
}
