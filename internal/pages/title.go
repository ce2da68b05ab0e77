package pages

import (
	"github.com/goliatone/go-notionmd/internal/richtext"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// titleCandidates lists the property names consulted for the page title, in order.
var titleCandidates = []string{"title", "Name"}

// ResolveTitle returns the first non-blank title candidate, or an id-derived
// fallback. It never panics.
func ResolveTitle(page interfaces.Page) string {
	title, _ := resolveTitle(page)
	return title
}

// resolveTitle also reports the property rendered as the heading, which the
// property list leaves out. When every candidate is blank the first one
// carrying a title array is still reported; other candidates stay listed.
func resolveTitle(page interfaces.Page) (title, property string) {
	defer func() {
		if recover() != nil {
			title, property = FallbackTitle(page.ID), ""
		}
	}()

	if page.Properties != nil {
		for _, name := range titleCandidates {
			value, ok := page.Properties.Get(name)
			if !ok {
				continue
			}
			spans, ok := titleSpans(value)
			if !ok {
				continue
			}
			if text := richtext.Extract(spans); !richtext.IsBlank(text) {
				return text, name
			}
			if property == "" {
				property = name
			}
		}
	}
	return FallbackTitle(page.ID), property
}

// FallbackTitle is "Página " followed by the first eight characters of the id.
func FallbackTitle(id string) string {
	runes := []rune(id)
	if len(runes) > 8 {
		runes = runes[:8]
	}
	return "Página " + string(runes)
}

func titleSpans(value any) (any, bool) {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, kind := range []string{"title", "rich_text"} {
		switch spans := fields[kind].(type) {
		case []any, []map[string]any:
			return spans, true
		}
	}
	return nil, false
}
