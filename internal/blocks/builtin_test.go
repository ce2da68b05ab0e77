package blocks

import (
	"errors"
	"testing"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

func spans(text string) []any {
	return []any{map[string]any{"plain_text": text}}
}

func textBlock(id, blockType, text string) interfaces.Block {
	return interfaces.Block{
		ID:   id,
		Type: blockType,
		Data: map[string]any{
			blockType: map[string]any{"rich_text": spans(text)},
		},
	}
}

func withField(block interfaces.Block, key string, value any) interfaces.Block {
	block.Data[block.Type].(map[string]any)[key] = value
	return block
}

func convert(t *testing.T, block interfaces.Block, level int) string {
	t.Helper()
	converter := NewDefaultRegistry(true).Lookup(block.Type)
	out, err := converter(block, level, interfaces.DefaultRenderOptions())
	if err != nil {
		t.Fatalf("convert %s: unexpected error %v", block.Type, err)
	}
	return out
}

func TestBuiltInConvertersOutput(t *testing.T) {
	cases := []struct {
		name  string
		block interfaces.Block
		level int
		want  string
	}{
		{"paragraph", textBlock("p", "paragraph", "This is a paragraph."), 0, "This is a paragraph.\n\n"},
		{"paragraph indented", textBlock("p", "paragraph", "Nested"), 2, "    Nested\n\n"},
		{"paragraph keeps whitespace", textBlock("p", "paragraph", " padded "), 0, " padded \n\n"},
		{"heading_1", textBlock("h", "heading_1", "Title"), 0, "# Title\n\n"},
		{"heading_2 ignores indent", textBlock("h", "heading_2", "Sub"), 3, "## Sub\n\n"},
		{"heading_3", textBlock("h", "heading_3", "Deep"), 0, "### Deep\n\n"},
		{"toggleable heading", withField(textBlock("h", "heading_2", "Folded"), "is_toggleable", true), 0, "<details>\n<summary><strong>## Folded</strong></summary>\n\n"},
		{"bulleted", textBlock("b", "bulleted_list_item", "Item"), 1, "  - Item\n"},
		{"numbered", textBlock("n", "numbered_list_item", "Step"), 0, "1. Step\n"},
		{"to_do checked", withField(textBlock("t", "to_do", "Done"), "checked", true), 0, "- [x] Done\n"},
		{"to_do unchecked", textBlock("t", "to_do", "Open"), 1, "  - [ ] Open\n"},
		{"to_do non-bool checked", withField(textBlock("t", "to_do", "Odd"), "checked", "yes"), 0, "- [ ] Odd\n"},
		{"quote", textBlock("q", "quote", "Cited"), 0, "> Cited\n\n"},
		{"divider", interfaces.Block{ID: "d", Type: "divider"}, 4, "---\n\n"},
		{"code", withField(textBlock("c", "code", "fmt.Println()"), "language", "go"), 1, "  ```go\nfmt.Println()\n```\n\n"},
		{"code without language", textBlock("c", "code", "x"), 0, "```\nx\n```\n\n"},
		{"toggle", textBlock("g", "toggle", "Toggle title"), 2, "<details>\n<summary>Toggle title</summary>\n\n"},
	}

	for _, tc := range cases {
		if got := convert(t, tc.block, tc.level); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestTextBearingConvertersSuppressBlankText(t *testing.T) {
	for _, blockType := range []string{"paragraph", "heading_1", "heading_2", "heading_3", "bulleted_list_item", "numbered_list_item"} {
		if got := convert(t, textBlock("x", blockType, " \t\n"), 0); got != "" {
			t.Fatalf("%s: expected blank text to render nothing, got %q", blockType, got)
		}
		if got := convert(t, interfaces.Block{ID: "x", Type: blockType, Data: map[string]any{blockType: map[string]any{}}}, 0); got != "" {
			t.Fatalf("%s: expected missing rich_text to render nothing, got %q", blockType, got)
		}
	}
}

func TestTextBearingConvertersRequirePayload(t *testing.T) {
	registry := NewDefaultRegistry(false)
	for _, blockType := range []string{"paragraph", "heading_1", "bulleted_list_item", "numbered_list_item", "to_do", "quote", "code", "toggle"} {
		for _, data := range []map[string]any{nil, {blockType: nil}, {blockType: "flat"}} {
			_, err := registry.Lookup(blockType)(interfaces.Block{ID: "x", Type: blockType, Data: data}, 0, interfaces.DefaultRenderOptions())
			if !errors.Is(err, ErrMissingPayload) {
				t.Fatalf("%s with data %v: expected ErrMissingPayload, got %v", blockType, data, err)
			}
		}
	}
}

func TestImageConverterResolution(t *testing.T) {
	image := func(payload any) interfaces.Block {
		return interfaces.Block{ID: "img", Type: "image", Data: map[string]any{"image": payload}}
	}

	cases := []struct {
		name  string
		block interfaces.Block
		want  string
	}{
		{
			name: "external with caption",
			block: image(map[string]any{
				"type":     "external",
				"external": map[string]any{"url": "https://example.com/a.png"},
				"caption":  spans("Diagram"),
			}),
			want: "![Diagram](https://example.com/a.png)\n\n",
		},
		{
			name: "file without caption",
			block: image(map[string]any{
				"type": "file",
				"file": map[string]any{"url": "https://files.example.com/b.png"},
			}),
			want: "![Imagen](https://files.example.com/b.png)\n\n",
		},
		{
			name:  "file upload",
			block: image(map[string]any{"file_upload": map[string]any{"id": "file-123"}}),
			want:  "<!-- Imagen subida (requiere descarga): file-123 -->\n\n",
		},
		{
			name:  "payload without url",
			block: image(map[string]any{"type": "external", "external": map[string]any{}}),
			want:  "<!-- Imagen sin URL válida -->\n\n",
		},
		{
			name:  "null payload",
			block: image(nil),
			want:  "<!-- Imagen sin datos -->\n\n",
		},
		{
			name:  "missing data",
			block: interfaces.Block{ID: "img", Type: "image"},
			want:  "<!-- Imagen sin datos -->\n\n",
		},
	}

	for _, tc := range cases {
		if got := convert(t, tc.block, 3); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestUnsupportedFallback(t *testing.T) {
	registry := NewRegistry()
	block := textBlock("u", "synced_block", "Mirror")

	out, err := registry.Lookup("synced_block")(block, 1, interfaces.DefaultRenderOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "  Mirror *(synced_block)*\n\n" {
		t.Fatalf("unexpected fallback output %q", out)
	}

	out, _ = registry.Lookup("synced_block")(block, 0, interfaces.RenderOptions{IndentSpaces: 2})
	if out != "Mirror\n\n" {
		t.Fatalf("expected annotation to be omitted, got %q", out)
	}

	out, _ = registry.Lookup("column_list")(interfaces.Block{ID: "c", Type: "column_list"}, 0, interfaces.DefaultRenderOptions())
	if out != "" {
		t.Fatalf("expected empty output without rich text, got %q", out)
	}
}

func TestExtendedConverters(t *testing.T) {
	callout := withField(textBlock("c", "callout", "Heads up"), "icon", map[string]any{"emoji": "💡"})
	if got := convert(t, callout, 0); got != "> 💡 Heads up\n\n" {
		t.Fatalf("unexpected callout %q", got)
	}

	bookmark := interfaces.Block{ID: "b", Type: "bookmark", Data: map[string]any{
		"bookmark": map[string]any{"url": "https://example.com"},
	}}
	if got := convert(t, bookmark, 1); got != "  [https://example.com](https://example.com)\n\n" {
		t.Fatalf("unexpected bookmark %q", got)
	}

	equation := interfaces.Block{ID: "e", Type: "equation", Data: map[string]any{
		"equation": map[string]any{"expression": "e=mc^2"},
	}}
	if got := convert(t, equation, 0); got != "$$\ne=mc^2\n$$\n\n" {
		t.Fatalf("unexpected equation %q", got)
	}

	child := interfaces.Block{ID: "p", Type: "child_page", Data: map[string]any{
		"child_page": map[string]any{"title": "Sub page"},
	}}
	if got := convert(t, child, 0); got != "📄 **Sub page**\n\n" {
		t.Fatalf("unexpected child page %q", got)
	}
}
