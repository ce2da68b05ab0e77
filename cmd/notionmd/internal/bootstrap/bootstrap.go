package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-notionmd"
	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const logProviderNone = "none"

// Options captures the CLI flags that shape the engine.
type Options struct {
	LogProvider    string
	LogLevel       string
	LogFormat      string
	ExtendedBlocks bool
	SlugStrategy   string
	IndentSpaces   int
	Workers        int
	SafePreview    bool
	// LogWriter receives console and zerolog output. Nil means stderr.
	LogWriter      io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module bundles the engine with the logger provider it was built with.
type Module struct {
	Engine   *notionmd.Engine
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// BuildModule constructs an engine configured from CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg := notionmd.DefaultConfig()
	cfg.Conversion.IndentSpaces = opts.IndentSpaces
	cfg.Conversion.Workers = opts.Workers
	cfg.Conversion.ExtendedBlocks = opts.ExtendedBlocks
	if strategy := strings.TrimSpace(opts.SlugStrategy); strategy != "" {
		cfg.Export.SlugStrategy = strategy
	}
	cfg.Markdown.Parser.SafeMode = opts.SafePreview

	applyLogging(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	engineOpts := []notionmd.Option{}
	if opts.LoggerProvider != nil {
		engineOpts = append(engineOpts, notionmd.WithLoggerProvider(opts.LoggerProvider))
	}
	engine, err := notionmd.New(cfg, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise engine: %w", err)
	}

	provider := engine.Container().LoggerProvider()
	return &Module{
		Engine:   engine,
		Provider: provider,
		Logger:   logging.ExportLogger(provider),
	}, nil
}

// applyLogging layers the logging flags over the default console provider.
// The provider name "none" turns logging off.
func applyLogging(cfg *notionmd.Config, opts Options) {
	provider := strings.ToLower(strings.TrimSpace(opts.LogProvider))
	if provider == logProviderNone {
		cfg.Features.Logger = false
		return
	}
	if provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	cfg.Logging.Format = strings.TrimSpace(opts.LogFormat)
	cfg.Logging.Writer = opts.LogWriter
}
