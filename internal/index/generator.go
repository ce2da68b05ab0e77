// Package index builds the markdown table of contents for an export.
package index

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/pages"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Fixed identity of the generated index document.
const (
	Filename = "index.md"
	ID       = "index"
	Title    = "Índice de Páginas Exportadas"
)

// Generator renders the index document. Links use the same slugger as the
// page files so they resolve to the exported names.
type Generator struct {
	slugger pages.Slugger
	logger  interfaces.Logger
}

// Option configures the generator.
type Option func(*Generator)

// WithSlugger overrides the link target strategy.
func WithSlugger(slugger pages.Slugger) Option {
	return func(g *Generator) {
		if slugger != nil {
			g.slugger = slugger
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator constructs an index generator using the default slugger.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		slugger: pages.DefaultSlugger{},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate lists every page in input order with its timestamps and id.
func (g *Generator) Generate(entries []interfaces.Metadata) interfaces.ConvertedDocument {
	var b strings.Builder
	b.WriteString("# " + Title + "\n\n")
	b.WriteString("**Total de páginas:** " + strconv.Itoa(len(entries)) + "\n\n")

	for _, entry := range entries {
		b.WriteString("**[" + entry.Title + "](./" + g.slugger.Slug(entry.Title) + ".md)**\n")
		if entry.CreatedTime != "" {
			b.WriteString("- Creado: " + entry.CreatedTime + "\n")
		}
		if entry.LastEditedTime != "" {
			b.WriteString("- Modificado: " + entry.LastEditedTime + "\n")
		}
		b.WriteString("- ID: `" + entry.ID + "`\n\n")
	}

	g.logger.Debug("index.generate.completed", "pages", len(entries))

	return interfaces.ConvertedDocument{
		Filename: Filename,
		Content:  b.String(),
		Metadata: interfaces.Metadata{ID: ID, Title: Title},
	}
}

// FromDocuments collects the metadata of converted documents.
func FromDocuments(docs []interfaces.ConvertedDocument) []interfaces.Metadata {
	out := make([]interfaces.Metadata, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Metadata)
	}
	return out
}
