package blocks

import (
	"strings"

	"github.com/goliatone/go-notionmd/internal/richtext"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// BuiltInConverters returns the core converter catalogue keyed by block type.
func BuiltInConverters() map[string]interfaces.BlockConverter {
	return map[string]interfaces.BlockConverter{
		"paragraph":          convertParagraph,
		"heading_1":          convertHeading,
		"heading_2":          convertHeading,
		"heading_3":          convertHeading,
		"bulleted_list_item": convertBulletedListItem,
		"numbered_list_item": convertNumberedListItem,
		"to_do":              convertToDo,
		"quote":              convertQuote,
		"divider":            convertDivider,
		"code":               convertCode,
		"toggle":             convertToggle,
		"image":              convertImage,
	}
}

func convertParagraph(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	text := richText(fields)
	if richtext.IsBlank(text) {
		return "", nil
	}
	return indent(level, opts) + text + "\n\n", nil
}

func convertHeading(block interfaces.Block, _ int, _ interfaces.RenderOptions) (string, error) {
	depth, ok := headingLevel(block.Type)
	if !ok {
		depth = 1
	}
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	text := richText(fields)
	if richtext.IsBlank(text) {
		return "", nil
	}
	marker := strings.Repeat("#", depth)
	if boolField(fields, "is_toggleable") {
		return "<details>\n<summary><strong>" + marker + " " + text + "</strong></summary>\n\n", nil
	}
	return marker + " " + text + "\n\n", nil
}

func convertBulletedListItem(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	return listItem(block, level, opts, "- ")
}

// Numbered items always use the literal "1." marker.
func convertNumberedListItem(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	return listItem(block, level, opts, "1. ")
}

func listItem(block interfaces.Block, level int, opts interfaces.RenderOptions, marker string) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	text := richText(fields)
	if richtext.IsBlank(text) {
		return "", nil
	}
	return indent(level, opts) + marker + text + "\n", nil
}

func convertToDo(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	box := "[ ]"
	if boolField(fields, "checked") {
		box = "[x]"
	}
	return indent(level, opts) + "- " + box + " " + richText(fields) + "\n", nil
}

func convertQuote(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	return indent(level, opts) + "> " + richText(fields) + "\n\n", nil
}

func convertDivider(interfaces.Block, int, interfaces.RenderOptions) (string, error) {
	return "---\n\n", nil
}

func convertCode(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	language := stringField(fields, "language")
	return indent(level, opts) + "```" + language + "\n" + richText(fields) + "\n```\n\n", nil
}

func convertToggle(block interfaces.Block, _ int, _ interfaces.RenderOptions) (string, error) {
	fields, err := requirePayload(block)
	if err != nil {
		return "", err
	}
	return "<details>\n<summary>" + richText(fields) + "</summary>\n\n", nil
}

func convertImage(block interfaces.Block, _ int, _ interfaces.RenderOptions) (string, error) {
	var raw any
	if block.Data != nil {
		raw = block.Data["image"]
	}
	if raw == nil {
		return "<!-- Imagen sin datos -->\n\n", nil
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return "<!-- Imagen sin URL válida -->\n\n", nil
	}

	var url string
	switch stringField(fields, "type") {
	case "external":
		url = stringField(objectField(fields, "external"), "url")
	case "file":
		url = stringField(objectField(fields, "file"), "url")
	}
	if url != "" {
		caption := richtext.Extract(fields["caption"])
		if caption == "" {
			caption = "Imagen"
		}
		return "![" + caption + "](" + url + ")\n\n", nil
	}

	if id := stringField(objectField(fields, "file_upload"), "id"); id != "" {
		return "<!-- Imagen subida (requiere descarga): " + id + " -->\n\n", nil
	}
	return "<!-- Imagen sin URL válida -->\n\n", nil
}

// convertUnsupported renders the block's own rich text with an optional type annotation.
func convertUnsupported(block interfaces.Block, level int, opts interfaces.RenderOptions) (string, error) {
	fields, ok := payload(block)
	if !ok {
		return "", nil
	}
	text := richText(fields)
	if richtext.IsBlank(text) {
		return "", nil
	}
	out := indent(level, opts) + text
	if opts.IncludeUnsupportedComments {
		out += " *(" + block.Type + ")*"
	}
	return out + "\n\n", nil
}
