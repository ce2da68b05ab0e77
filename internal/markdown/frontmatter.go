package markdown

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

const (
	TextCodeFrontMatterInvalid = "FRONTMATTER_INVALID"

	frontMatterDelimiter = "---\n"
)

// WithFrontMatter prefixes the document content with a YAML header carrying
// its metadata. The body is left untouched after a blank separator line.
func WithFrontMatter(doc interfaces.ConvertedDocument) (string, error) {
	header, err := yaml.Marshal(doc.Metadata)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "encode front matter").
			WithTextCode(TextCodeFrontMatterInvalid).
			WithMetadata(map[string]any{"page_id": doc.Metadata.ID})
	}

	var b strings.Builder
	b.WriteString(frontMatterDelimiter)
	b.Write(header)
	b.WriteString(frontMatterDelimiter)
	b.WriteString("\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

// ParseFrontMatter splits a file into its metadata header and body. Files
// without a header return zero metadata and the source unchanged.
func ParseFrontMatter(source []byte) (interfaces.Metadata, []byte, error) {
	var meta interfaces.Metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.Metadata{}, nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "parse front matter").
			WithTextCode(TextCodeFrontMatterInvalid)
	}
	if meta != (interfaces.Metadata{}) {
		body = bytes.TrimPrefix(body, []byte("\n"))
	}
	return meta, body, nil
}
