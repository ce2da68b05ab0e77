package di

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-notionmd/internal/blocks"
	"github.com/goliatone/go-notionmd/internal/index"
	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/logging/console"
	"github.com/goliatone/go-notionmd/internal/logging/gologger"
	"github.com/goliatone/go-notionmd/internal/logging/zerologger"
	"github.com/goliatone/go-notionmd/internal/markdown"
	"github.com/goliatone/go-notionmd/internal/metrics"
	"github.com/goliatone/go-notionmd/internal/pages"
	"github.com/goliatone/go-notionmd/internal/properties"
	"github.com/goliatone/go-notionmd/internal/runtimeconfig"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Container wires the conversion components from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	metrics        interfaces.ConversionMetrics
	registerer     prometheus.Registerer
	gatherer       prometheus.Gatherer
	slugger        pages.Slugger

	registry   *blocks.Registry
	renderer   *blocks.Renderer
	serializer *properties.Serializer
	assembler  *pages.Assembler
	index      *index.Generator
	parser     *markdown.GoldmarkParser
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMetrics overrides the recorder built from Config.Metrics.
func WithMetrics(recorder interfaces.ConversionMetrics) Option {
	return func(c *Container) {
		c.metrics = recorder
	}
}

// WithRegisterer sets where Prometheus collectors are registered when
// metrics are enabled. Without it a private registry is created.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Container) {
		c.registerer = reg
	}
}

// WithSlugger overrides the strategy selected by Config.Export.SlugStrategy.
func WithSlugger(slugger pages.Slugger) Option {
	return func(c *Container) {
		c.slugger = slugger
	}
}

// NewContainer validates cfg and builds every component.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureMetrics()
	if c.slugger == nil {
		c.slugger = pages.SluggerFor(cfg.Export.SlugStrategy)
	}

	c.registry = blocks.NewDefaultRegistry(cfg.Conversion.ExtendedBlocks)
	c.renderer = blocks.NewRenderer(c.registry,
		blocks.WithLogger(logging.BlocksLogger(c.loggerProvider)),
		blocks.WithMetrics(c.metrics),
	)
	c.serializer = properties.NewSerializer(
		properties.WithLogger(logging.PropertiesLogger(c.loggerProvider)),
		properties.WithMetrics(c.metrics),
	)
	c.assembler = pages.NewAssembler(c.renderer, c.serializer,
		pages.WithSlugger(c.slugger),
		pages.WithDefaults(cfg.RenderOptions()),
		pages.WithWorkers(cfg.Conversion.Workers),
		pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		pages.WithMetrics(c.metrics),
	)
	c.index = index.NewGenerator(
		index.WithSlugger(c.slugger),
		index.WithLogger(logging.IndexLogger(c.loggerProvider)),
	)
	c.parser = markdown.NewGoldmarkParser(cfg.Markdown.Parser.ParseOptions(),
		markdown.WithParserLogger(logging.MarkdownLogger(c.loggerProvider)),
	)

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"block_types", len(c.registry.SupportedTypes()),
		"extended_blocks", cfg.Conversion.ExtendedBlocks,
		"metrics_enabled", cfg.Metrics.Enabled,
		"slug_strategy", cfg.Export.SlugStrategy,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch runtimeconfig.NormalizeProvider(logCfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "zerolog":
		provider, err := zerologger.NewProvider(zerologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Writer:    logCfg.Writer,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		provider, err := console.NewProvider(console.Options{
			Writer: logCfg.Writer,
			Level:  logCfg.Level,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureMetrics() {
	if c.metrics != nil {
		return
	}
	if !c.Config.Metrics.Enabled {
		c.metrics = metrics.NoOp()
		return
	}
	if c.registerer == nil {
		registry := prometheus.NewRegistry()
		c.registerer = registry
		c.gatherer = registry
	} else if gatherer, ok := c.registerer.(prometheus.Gatherer); ok {
		c.gatherer = gatherer
	}
	c.metrics = metrics.NewPrometheus(c.registerer, c.Config.Metrics.Namespace)
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Metrics returns the active recorder.
func (c *Container) Metrics() interfaces.ConversionMetrics {
	return c.metrics
}

// Gatherer exposes the Prometheus registry when the container owns one or
// the supplied registerer can gather.
func (c *Container) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// Slugger returns the file name strategy shared by pages and the index.
func (c *Container) Slugger() pages.Slugger {
	return c.slugger
}

// Registry returns the block converter registry.
func (c *Container) Registry() *blocks.Registry {
	return c.registry
}

// Renderer returns the block tree renderer.
func (c *Container) Renderer() *blocks.Renderer {
	return c.renderer
}

// Serializer returns the property serializer.
func (c *Container) Serializer() *properties.Serializer {
	return c.serializer
}

// Assembler returns the page assembler.
func (c *Container) Assembler() *pages.Assembler {
	return c.assembler
}

// Index returns the index generator.
func (c *Container) Index() *index.Generator {
	return c.index
}

// Parser returns the goldmark preview parser.
func (c *Container) Parser() *markdown.GoldmarkParser {
	return c.parser
}
