package blocks

import (
	"strings"

	"github.com/goliatone/go-notionmd/internal/richtext"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// ExtendedConverters returns optional converters for block types outside the
// core catalogue. They are only registered when extended blocks are enabled.
func ExtendedConverters() map[string]interfaces.BlockConverter {
	return map[string]interfaces.BlockConverter{
		"callout":    convertCallout,
		"bookmark":   convertBookmark,
		"equation":   convertEquation,
		"child_page": convertChildPage,
	}
}

func convertCallout(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	text := richText(fields)
	if richtext.IsBlank(text) {
		return "", nil
	}
	prefix := ""
	if emoji := stringField(objectField(fields, "icon"), "emoji"); emoji != "" {
		prefix = emoji + " "
	}
	return indent(level, opts) + "> " + prefix + text + "\n\n", nil
}

func convertBookmark(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	url := stringField(fields, "url")
	if strings.TrimSpace(url) == "" {
		return "", nil
	}
	label := richtext.Extract(fields["caption"])
	if richtext.IsBlank(label) {
		label = url
	}
	return indent(level, opts) + "[" + label + "](" + url + ")\n\n", nil
}

func convertEquation(block interfaces.Block, _ int, _ interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	expression := stringField(fields, "expression")
	if strings.TrimSpace(expression) == "" {
		return "", nil
	}
	return "$$\n" + expression + "\n$$\n\n", nil
}

func convertChildPage(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	title := stringField(fields, "title")
	if strings.TrimSpace(title) == "" {
		return "", nil
	}
	return indent(level, opts) + "📄 **" + title + "**\n\n", nil
}
