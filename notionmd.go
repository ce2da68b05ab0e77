// Package notionmd converts page property maps and block trees into markdown
// documents, plus an index document linking them.
package notionmd

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-notionmd/internal/di"
	"github.com/goliatone/go-notionmd/internal/pages"
	"github.com/goliatone/go-notionmd/internal/richtext"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

type (
	Block             = interfaces.Block
	Page              = interfaces.Page
	PageWithBlocks    = interfaces.PageWithBlocks
	PropertyMap       = interfaces.PropertyMap
	Metadata          = interfaces.Metadata
	ConvertedDocument = interfaces.ConvertedDocument
	ConversionOptions = interfaces.ConversionOptions
	RenderOptions     = interfaces.RenderOptions
	BlockConverter    = interfaces.BlockConverter
	PropertyFormatter = interfaces.PropertyFormatter
	Logger            = interfaces.Logger
	LoggerProvider    = interfaces.LoggerProvider
	ConversionMetrics = interfaces.ConversionMetrics
	Slugger           = pages.Slugger
	SluggerFunc       = pages.SluggerFunc
)

// NewPropertyMap returns an empty insertion ordered property map.
func NewPropertyMap() *PropertyMap {
	return interfaces.NewPropertyMap()
}

// Option customises engine construction.
type Option = di.Option

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithMetrics overrides the recorder selected by Config.Metrics.
func WithMetrics(recorder ConversionMetrics) Option {
	return di.WithMetrics(recorder)
}

// WithRegisterer registers Prometheus collectors on reg when metrics are enabled.
func WithRegisterer(reg prometheus.Registerer) Option {
	return di.WithRegisterer(reg)
}

// WithSlugger overrides the file name strategy used for pages and index links.
func WithSlugger(slugger Slugger) Option {
	return di.WithSlugger(slugger)
}

// Engine is the conversion facade. Register custom converters during setup;
// conversion calls are safe for concurrent use.
type Engine struct {
	container *di.Container
}

// New validates cfg and builds an engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{container: container}, nil
}

// Container exposes the underlying wiring for advanced integrations.
func (e *Engine) Container() *di.Container {
	return e.container
}

// RegisterBlockConverter adds or replaces the converter for blockType.
func (e *Engine) RegisterBlockConverter(blockType string, converter BlockConverter) error {
	return e.container.Registry().RegisterChecked(blockType, converter)
}

// RegisterPropertyFormatter adds a formatter for a property kind not handled
// by the built in serializer.
func (e *Engine) RegisterPropertyFormatter(kind string, formatter PropertyFormatter) {
	e.container.Serializer().Register(kind, formatter)
}

// SupportedBlockTypes lists registered block types in sorted order.
func (e *Engine) SupportedBlockTypes() []string {
	return e.container.Registry().SupportedTypes()
}

// ConvertPage renders the page header and properties. Conversion never
// fails: broken properties are folded into fallback text.
func (e *Engine) ConvertPage(page Page, opts *ConversionOptions) ConvertedDocument {
	return e.container.Assembler().ConvertPage(page, opts)
}

// ConvertPageWithBlocks renders the page header, properties and block content.
func (e *Engine) ConvertPageWithBlocks(page Page, blocks []Block, opts *ConversionOptions) ConvertedDocument {
	return e.container.Assembler().ConvertPageWithBlocks(page, blocks, opts)
}

// ConvertPages converts each page without block content, preserving order.
func (e *Engine) ConvertPages(pages []Page, opts *ConversionOptions) []ConvertedDocument {
	return e.container.Assembler().ConvertPages(pages, opts)
}

// ConvertPagesWithBlocks converts each pair sequentially, preserving order.
func (e *Engine) ConvertPagesWithBlocks(pairs []PageWithBlocks, opts *ConversionOptions) []ConvertedDocument {
	return e.container.Assembler().ConvertPagesWithBlocks(pairs, opts)
}

// ConvertConcurrently converts pairs on a bounded worker pool. Output order
// matches input order; only context cancellation returns an error.
func (e *Engine) ConvertConcurrently(ctx context.Context, pairs []PageWithBlocks, opts *ConversionOptions) ([]ConvertedDocument, error) {
	return e.container.Assembler().ConvertConcurrently(ctx, pairs, opts)
}

// GenerateIndex builds index.md for the supplied page metadata.
func (e *Engine) GenerateIndex(entries []Metadata) ConvertedDocument {
	return e.container.Index().Generate(entries)
}

// RenderBlocks renders a block sequence at nesting level zero.
func (e *Engine) RenderBlocks(blocks []Block, opts *ConversionOptions) string {
	resolved := opts.Resolve(e.container.Config.RenderOptions())
	return e.container.Renderer().RenderBlocks(blocks, 0, resolved)
}

// ExtractPlainText concatenates the text of a rich text span list.
func (e *Engine) ExtractPlainText(spans any) string {
	return richtext.Extract(spans)
}

// Slugify returns the file stem the engine would use for title.
func (e *Engine) Slugify(title string) string {
	return e.container.Slugger().Slug(title)
}

// PreviewHTML renders a converted document to HTML.
func (e *Engine) PreviewHTML(doc ConvertedDocument) ([]byte, error) {
	return e.container.Parser().Preview(doc)
}
