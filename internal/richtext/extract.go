// Package richtext flattens rich-text span sequences into plain text.
package richtext

import "strings"

// Extract concatenates the text of every span in order. A span contributes its
// plain_text when that is a string, else text.content, else nothing. Anything that is not a span
// sequence yields "".
func Extract(spans any) string {
	switch typed := spans.(type) {
	case []any:
		var b strings.Builder
		for _, span := range typed {
			b.WriteString(spanText(span))
		}
		return b.String()
	case []map[string]any:
		var b strings.Builder
		for _, span := range typed {
			b.WriteString(spanText(span))
		}
		return b.String()
	default:
		return ""
	}
}

// IsBlank reports whether the text is empty once surrounding whitespace is removed.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func spanText(span any) string {
	fields, ok := span.(map[string]any)
	if !ok {
		return ""
	}
	if text, ok := fields["plain_text"].(string); ok {
		return text
	}
	if inner, ok := fields["text"].(map[string]any); ok {
		if content, ok := inner["content"].(string); ok {
			return content
		}
	}
	return ""
}
