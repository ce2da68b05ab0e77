package pages

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/metrics"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const (
	contentHeading = "## Contenido\n\n"
	noBlocksNotice = "*Esta página no tiene contenido de bloques.*\n"
)

// BlockRenderer renders a sequence of blocks at a nesting level.
type BlockRenderer interface {
	RenderBlocks(blocks []interfaces.Block, level int, opts interfaces.RenderOptions) string
}

// PropertySerializer renders the property section of a page.
type PropertySerializer interface {
	SerializeProperties(props *interfaces.PropertyMap, exclude ...string) string
}

// Assembler builds complete markdown documents from pages and their blocks.
type Assembler struct {
	renderer   BlockRenderer
	properties PropertySerializer
	slugger    Slugger
	defaults   interfaces.RenderOptions
	workers    int
	logger     interfaces.Logger
	metrics    interfaces.ConversionMetrics
}

// Option configures the assembler.
type Option func(*Assembler)

// WithSlugger overrides the file name strategy.
func WithSlugger(slugger Slugger) Option {
	return func(a *Assembler) {
		if slugger != nil {
			a.slugger = slugger
		}
	}
}

// WithDefaults sets the render options applied when a call supplies no overrides.
func WithDefaults(defaults interfaces.RenderOptions) Option {
	return func(a *Assembler) {
		a.defaults = defaults
	}
}

// WithWorkers bounds ConvertConcurrently. Zero or less uses GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(a *Assembler) {
		a.workers = workers
	}
}

// WithLogger attaches the logger used for page level diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics wires the recorder used for converted page counts.
func WithMetrics(recorder interfaces.ConversionMetrics) Option {
	return func(a *Assembler) {
		if recorder != nil {
			a.metrics = recorder
		}
	}
}

// NewAssembler wires the block renderer and property serializer into an assembler.
func NewAssembler(renderer BlockRenderer, serializer PropertySerializer, opts ...Option) *Assembler {
	a := &Assembler{
		renderer:   renderer,
		properties: serializer,
		slugger:    DefaultSlugger{},
		defaults:   interfaces.DefaultRenderOptions(),
		logger:     logging.NoOp(),
		metrics:    metrics.NoOp(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Slugger exposes the file name strategy in use.
func (a *Assembler) Slugger() Slugger {
	return a.slugger
}

// ConvertPage assembles a document from the page header and properties only.
func (a *Assembler) ConvertPage(page interfaces.Page, opts *interfaces.ConversionOptions) interfaces.ConvertedDocument {
	return a.assemble(page, nil, false, opts)
}

// ConvertPageWithBlocks assembles a document including the rendered content section.
func (a *Assembler) ConvertPageWithBlocks(page interfaces.Page, blocks []interfaces.Block, opts *interfaces.ConversionOptions) interfaces.ConvertedDocument {
	return a.assemble(page, blocks, true, opts)
}

// ConvertPages applies ConvertPage to each page, preserving order.
func (a *Assembler) ConvertPages(pages []interfaces.Page, opts *interfaces.ConversionOptions) []interfaces.ConvertedDocument {
	out := make([]interfaces.ConvertedDocument, len(pages))
	for i, page := range pages {
		out[i] = a.ConvertPage(page, opts)
	}
	return out
}

// ConvertPagesWithBlocks applies ConvertPageWithBlocks to each pair, preserving order.
func (a *Assembler) ConvertPagesWithBlocks(pairs []interfaces.PageWithBlocks, opts *interfaces.ConversionOptions) []interfaces.ConvertedDocument {
	out := make([]interfaces.ConvertedDocument, len(pairs))
	for i, pair := range pairs {
		out[i] = a.ConvertPageWithBlocks(pair.Page, pair.Blocks, opts)
	}
	return out
}

// ConvertConcurrently converts pairs in parallel, bounded by the worker
// limit. Output order matches input order. Only context cancellation fails
// the batch.
func (a *Assembler) ConvertConcurrently(ctx context.Context, pairs []interfaces.PageWithBlocks, opts *interfaces.ConversionOptions) ([]interfaces.ConvertedDocument, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	workers := a.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]interfaces.ConvertedDocument, len(pairs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := range pairs {
		if err := groupCtx.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			out[i] = a.ConvertPageWithBlocks(pairs[i].Page, pairs[i].Blocks, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		a.logger.Warn("pages.convert.cancelled", "pages", len(pairs), "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assembler) assemble(page interfaces.Page, blocks []interfaces.Block, withBlocks bool, opts *interfaces.ConversionOptions) interfaces.ConvertedDocument {
	resolved := opts.Resolve(a.defaults)
	title, titleProperty := resolveTitle(page)
	logger := logging.WithPageContext(a.logger, page.ID)

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString("**ID de la página:** `" + page.ID + "`\n\n")
	if page.URL != "" {
		b.WriteString("[Ver en Notion](" + page.URL + ")\n\n")
	}
	if a.properties != nil {
		var exclude []string
		if titleProperty != "" {
			exclude = append(exclude, titleProperty)
		}
		b.WriteString(a.properties.SerializeProperties(page.Properties, exclude...))
	}
	if withBlocks {
		b.WriteString(contentHeading)
		if len(blocks) == 0 || a.renderer == nil {
			b.WriteString(noBlocksNotice)
		} else {
			b.WriteString(a.renderer.RenderBlocks(blocks, 0, resolved))
		}
	}

	filename := a.slugger.Slug(title) + ".md"
	a.metrics.IncrementPageConverted(withBlocks)
	logger.Debug("pages.convert.completed", "filename", filename, "blocks", len(blocks))

	return interfaces.ConvertedDocument{
		Filename: filename,
		Content:  b.String(),
		Metadata: interfaces.Metadata{
			ID:             page.ID,
			Title:          title,
			CreatedTime:    page.CreatedTime,
			LastEditedTime: page.LastEditedTime,
		},
	}
}
