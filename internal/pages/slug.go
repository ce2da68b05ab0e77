package pages

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

// MaxSlugLength bounds every generated file name stem.
const MaxSlugLength = 50

// slugSpace is the whitespace class of the slug rule: ASCII whitespace,
// including \v, plus the Unicode space separators and the BOM.
const slugSpace = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9` + slugSpace + `-]`)
	slugWhitespace = regexp.MustCompile(`[` + slugSpace + `]+`)
)

// Slugger derives a file name stem from a resolved page title.
type Slugger interface {
	Slug(title string) string
}

// SluggerFunc adapts a function to the Slugger interface.
type SluggerFunc func(title string) string

func (f SluggerFunc) Slug(title string) string { return f(title) }

// Slugify lowercases the title, drops characters other than [a-z0-9],
// whitespace and "-", collapses whitespace runs to "-" and truncates to
// MaxSlugLength.
// Accented letters are removed, not transliterated.
func Slugify(title string) string {
	value := strings.ToLower(title)
	value = slugDisallowed.ReplaceAllString(value, "")
	value = slugWhitespace.ReplaceAllString(value, "-")
	if len(value) > MaxSlugLength {
		value = value[:MaxSlugLength]
	}
	return value
}

// DefaultSlugger applies Slugify.
type DefaultSlugger struct{}

func (DefaultSlugger) Slug(title string) string { return Slugify(title) }

// TransliteratingSlugger normalizes titles with go-slug, keeping accented
// letters as their ASCII base. It falls back to Slugify when normalization
// fails or yields nothing.
type TransliteratingSlugger struct{}

func (TransliteratingSlugger) Slug(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return Slugify(title)
	}
	if len(normalized) > MaxSlugLength {
		normalized = normalized[:MaxSlugLength]
	}
	return normalized
}

// SluggerFor maps a strategy name onto a Slugger. Unknown names use DefaultSlugger.
func SluggerFor(strategy string) Slugger {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "transliterate":
		return TransliteratingSlugger{}
	default:
		return DefaultSlugger{}
	}
}
