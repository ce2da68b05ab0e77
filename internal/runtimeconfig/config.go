package runtimeconfig

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// MaxIndentSpaces bounds the configured default indentation.
const MaxIndentSpaces = 16

var ErrIndentSpacesInvalid = errors.New("notionmd config: indent spaces must be between 0 and 16")
var ErrWorkersInvalid = errors.New("notionmd config: workers must be zero or positive")
var ErrExportOutputDirRequired = errors.New("notionmd config: export output directory is required")
var ErrSlugStrategyUnknown = errors.New("notionmd config: slug strategy is invalid")
var ErrLoggingProviderRequired = errors.New("notionmd config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("notionmd config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("notionmd config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("notionmd config: logging format is invalid")
var ErrMetricsNamespaceRequired = errors.New("notionmd config: metrics namespace is required when metrics are enabled")

// Config aggregates the engine settings. Zero values are not meaningful; start
// from DefaultConfig.
type Config struct {
	Conversion ConversionConfig
	Logging    LoggingConfig
	Export     ExportConfig
	Markdown   MarkdownConfig
	Metrics    MetricsConfig
	Features   Features
}

// ConversionConfig holds the defaults applied when a call passes no overrides.
type ConversionConfig struct {
	IndentSpaces               int
	IncludeUnsupportedComments bool
	// Workers bounds concurrent batch conversion. Zero uses GOMAXPROCS.
	Workers int
	// ExtendedBlocks registers callout, bookmark, equation and child_page.
	ExtendedBlocks bool
}

// Features toggles optional behaviour. Logger is on by default so isolated
// block and property failures reach stderr; turn it off for silent runs.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	// Writer receives console and zerolog output. Nil means stderr.
	Writer io.Writer
}

// ExportConfig controls how converted documents are written to disk.
type ExportConfig struct {
	OutputDir     string
	Frontmatter   bool
	SlugStrategy  string
	GenerateIndex bool
}

// MarkdownConfig holds the goldmark options used for previews.
type MarkdownConfig struct {
	Parser MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// ParseOptions converts the config into parser options.
func (c MarkdownParserConfig) ParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), c.Extensions...),
		Sanitize:   c.Sanitize,
		HardWraps:  c.HardWraps,
		SafeMode:   c.SafeMode,
	}
}

// MetricsConfig controls the Prometheus recorder.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// DefaultConfig returns the settings used by the CLI and by New when no
// overrides are supplied.
func DefaultConfig() Config {
	return Config{
		Conversion: ConversionConfig{
			IndentSpaces:               interfaces.DefaultIndentSpaces,
			IncludeUnsupportedComments: interfaces.DefaultIncludeUnsupportedComments,
		},
		Features: Features{
			Logger: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "error",
		},
		Export: ExportConfig{
			OutputDir:     "export",
			SlugStrategy:  "default",
			GenerateIndex: true,
		},
		Metrics: MetricsConfig{
			Namespace: "notionmd",
		},
	}
}

// RenderOptions returns the conversion defaults as render options.
func (cfg Config) RenderOptions() interfaces.RenderOptions {
	return interfaces.RenderOptions{
		IndentSpaces:               cfg.Conversion.IndentSpaces,
		IncludeUnsupportedComments: cfg.Conversion.IncludeUnsupportedComments,
	}
}

// Validate performs high level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Conversion.IndentSpaces < 0 || cfg.Conversion.IndentSpaces > MaxIndentSpaces {
		return fmt.Errorf("%w: %d", ErrIndentSpacesInvalid, cfg.Conversion.IndentSpaces)
	}
	if cfg.Conversion.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Conversion.Workers)
	}
	if strings.TrimSpace(cfg.Export.OutputDir) == "" {
		return ErrExportOutputDirRequired
	}
	if strategy := strings.ToLower(strings.TrimSpace(cfg.Export.SlugStrategy)); strategy != "" && !isSupportedSlugStrategy(strategy) {
		return fmt.Errorf("%w: %s", ErrSlugStrategyUnknown, strategy)
	}
	if cfg.Metrics.Enabled && strings.TrimSpace(cfg.Metrics.Namespace) == "" {
		return ErrMetricsNamespaceRequired
	}
	if cfg.Features.Logger {
		provider := NormalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider != "console" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizeProvider lowercases and trims a logging provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "zerolog":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	_, ok := logging.ParseLevel(level)
	return ok
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedSlugStrategy(strategy string) bool {
	switch strategy {
	case "default", "transliterate":
		return true
	default:
		return false
	}
}
