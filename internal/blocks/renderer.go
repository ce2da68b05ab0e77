package blocks

import (
	"strings"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/metrics"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const detailsClose = "</details>\n\n"

// Renderer walks block trees and folds each node's conversion into markdown.
// A failing node is replaced by an error comment without affecting its siblings.
type Renderer struct {
	registry interfaces.BlockConverterRegistry
	logger   interfaces.Logger
	metrics  interfaces.ConversionMetrics
}

// RendererOption configures the renderer instance.
type RendererOption func(*Renderer)

// WithLogger attaches the logger used to report contained failures.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics wires the recorder used for rendered and failed block counts.
func WithMetrics(recorder interfaces.ConversionMetrics) RendererOption {
	return func(r *Renderer) {
		if recorder != nil {
			r.metrics = recorder
		}
	}
}

// NewRenderer constructs a renderer over the supplied registry. A nil registry
// falls back to the built-in catalogue.
func NewRenderer(registry interfaces.BlockConverterRegistry, opts ...RendererOption) *Renderer {
	if registry == nil {
		registry = NewDefaultRegistry(false)
	}
	r := &Renderer{
		registry: registry,
		logger:   logging.NoOp(),
		metrics:  metrics.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry exposes the registry the renderer dispatches through.
func (r *Renderer) Registry() interfaces.BlockConverterRegistry {
	return r.registry
}

// RenderBlock renders the block and, recursively, its children one level deeper.
func (r *Renderer) RenderBlock(block interfaces.Block, level int, opts interfaces.RenderOptions) string {
	own, err := r.convert(block, level, opts)
	if err != nil {
		r.logger.Error("blocks.render.failed",
			logging.FieldBlockType, block.Type,
			logging.FieldBlockID, block.ID,
			"level", level,
			logging.FieldError, err,
		)
		r.metrics.IncrementBlockFailed(block.Type)
		return FailureComment(block)
	}
	r.metrics.IncrementBlockRendered(block.Type)

	if isToggleContainer(block) {
		children := r.RenderBlocks(block.Children, level+1, opts)
		if own == "" {
			return children
		}
		return own + children + detailsClose
	}
	if block.HasChildren() {
		return own + r.RenderBlocks(block.Children, level+1, opts)
	}
	return own
}

// RenderBlocks concatenates RenderBlock over blocks at a fixed level.
func (r *Renderer) RenderBlocks(blocks []interfaces.Block, level int, opts interfaces.RenderOptions) string {
	if len(blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(r.RenderBlock(block, level, opts))
	}
	return b.String()
}

// FailureComment is the fallback emitted in place of a block that failed to convert.
func FailureComment(block interfaces.Block) string {
	return "<!-- Error al convertir bloque " + block.Type + ": " + block.ID + " -->\n\n"
}

func (r *Renderer) convert(block interfaces.Block, level int, opts interfaces.RenderOptions) (out string, err error) {
	ref := blockRef{typ: block.Type, id: block.ID}
	defer func() {
		if recovered := recover(); recovered != nil {
			out = ""
			err = panicError(ref, recovered)
		}
	}()

	converter := r.registry.Lookup(block.Type)
	if converter == nil {
		converter = convertUnsupported
	}
	out, err = converter(block, level, opts)
	if err != nil {
		return "", conversionError(ref, err)
	}
	return out, nil
}
