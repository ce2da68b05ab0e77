package blocks

import (
	"strings"

	"github.com/goliatone/go-notionmd/internal/richtext"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// payload returns the object stored under data[block.Type].
func payload(block interfaces.Block) (map[string]any, bool) {
	if block.Data == nil {
		return nil, false
	}
	fields, ok := block.Data[block.Type].(map[string]any)
	return fields, ok
}

// requirePayload is payload for converters that cannot render without one.
func requirePayload(block interfaces.Block) (map[string]any, error) {
	fields, ok := payload(block)
	if !ok {
		return nil, ErrMissingPayload
	}
	return fields, nil
}

func richText(fields map[string]any) string {
	return richtext.Extract(fields["rich_text"])
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func boolField(fields map[string]any, key string) bool {
	value, _ := fields[key].(bool)
	return value
}

func objectField(fields map[string]any, key string) map[string]any {
	value, _ := fields[key].(map[string]any)
	return value
}

func indent(level int, opts interfaces.RenderOptions) string {
	width := level * opts.IndentSpaces
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}

// headingLevel reports the markdown depth for heading_1..heading_3.
func headingLevel(blockType string) (int, bool) {
	switch blockType {
	case "heading_1":
		return 1, true
	case "heading_2":
		return 2, true
	case "heading_3":
		return 3, true
	default:
		return 0, false
	}
}

// isToggleContainer reports whether the block opens a <details> section that
// the renderer has to close.
func isToggleContainer(block interfaces.Block) bool {
	if block.Type == "toggle" {
		return true
	}
	if _, ok := headingLevel(block.Type); !ok {
		return false
	}
	fields, ok := payload(block)
	return ok && boolField(fields, "is_toggleable")
}
