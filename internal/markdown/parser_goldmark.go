package markdown

import (
	"bytes"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// TextCodePreviewFailed tags errors returned by the goldmark renderer.
const TextCodePreviewFailed = "MARKDOWN_PREVIEW_FAILED"

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// GoldmarkParser renders converted documents to HTML. It holds no mutable
// state and can be shared between goroutines.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	logger   interfaces.Logger
}

// ParserOption configures a GoldmarkParser.
type ParserOption func(*GoldmarkParser)

// WithParserLogger attaches the logger used to report preview failures.
func WithParserLogger(logger interfaces.Logger) ParserOption {
	return func(p *GoldmarkParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewGoldmarkParser returns a parser that falls back to defaults when Parse
// is called.
func NewGoldmarkParser(defaults interfaces.ParseOptions, opts ...ParserOption) *GoldmarkParser {
	p := &GoldmarkParser{defaults: defaults, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse renders markdown with the parser defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaults)
}

// ParseWithOptions renders markdown with the supplied options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEngine(opts).Convert(markdown, &buf); err != nil {
		p.logger.Error("markdown.preview.failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "render markdown preview").
			WithTextCode(TextCodePreviewFailed)
	}
	return buf.Bytes(), nil
}

// Preview renders a converted document, dropping any front matter header.
func (p *GoldmarkParser) Preview(doc interfaces.ConvertedDocument) ([]byte, error) {
	_, body, err := ParseFrontMatter([]byte(doc.Content))
	if err != nil {
		p.logger.Warn("markdown.preview.front_matter_invalid", "filename", doc.Filename, "error", err)
		return nil, err
	}
	return p.Parse(body)
}

func newEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	// Toggle blocks are emitted as raw <details> markup.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := resolveExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var knownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
}

// resolveExtensions maps names to extenders. Unknown names are skipped and
// an empty list selects GFM with task lists.
func resolveExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.TaskList}
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := knownExtensions[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ext)
	}
	return out
}
