package pages

import (
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

func TestResolveTitleOrder(t *testing.T) {
	props := interfaces.NewPropertyMap()
	props.Set("Name", map[string]any{"title": spans("From Name")})
	props.Set("title", map[string]any{"title": spans("From title")})

	if got := ResolveTitle(interfaces.Page{ID: "x", Properties: props}); got != "From title" {
		t.Fatalf("expected title property to win, got %q", got)
	}

	props.Set("title", map[string]any{"title": spans("   ")})
	if got := ResolveTitle(interfaces.Page{ID: "x", Properties: props}); got != "From Name" {
		t.Fatalf("expected blank title to fall through to Name, got %q", got)
	}
}

func TestResolveTitleAcceptsRichText(t *testing.T) {
	props := interfaces.NewPropertyMap()
	props.Set("Name", map[string]any{"rich_text": spans(" Padded ")})

	if got := ResolveTitle(interfaces.Page{ID: "x", Properties: props}); got != " Padded " {
		t.Fatalf("expected untrimmed rich text title, got %q", got)
	}
}

func TestResolveTitleFallback(t *testing.T) {
	props := interfaces.NewPropertyMap()
	props.Set("Name", map[string]any{"select": map[string]any{"name": "not a title"}})

	if got := ResolveTitle(interfaces.Page{ID: "0123456789", Properties: props}); got != "Página 01234567" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := ResolveTitle(interfaces.Page{ID: "abc"}); got != "Página abc" {
		t.Fatalf("unexpected short id fallback %q", got)
	}
}

func TestResolveTitleReportsHeadingProperty(t *testing.T) {
	cases := []struct {
		name     string
		props    func() *interfaces.PropertyMap
		title    string
		property string
	}{
		{
			name: "both candidates carry arrays",
			props: func() *interfaces.PropertyMap {
				props := interfaces.NewPropertyMap()
				props.Set("title", map[string]any{"title": spans("Principal")})
				props.Set("Name", map[string]any{"rich_text": spans("Secundario")})
				return props
			},
			title:    "Principal",
			property: "title",
		},
		{
			name: "blank title falls through to Name",
			props: func() *interfaces.PropertyMap {
				props := interfaces.NewPropertyMap()
				props.Set("title", map[string]any{"title": spans("  ")})
				props.Set("Name", map[string]any{"title": spans("Nombre")})
				return props
			},
			title:    "Nombre",
			property: "Name",
		},
		{
			name: "blank array still names the heading property",
			props: func() *interfaces.PropertyMap {
				props := interfaces.NewPropertyMap()
				props.Set("Name", map[string]any{"title": spans("")})
				props.Set("title", map[string]any{"number": 1.0})
				return props
			},
			title:    "Página abc",
			property: "Name",
		},
		{
			name: "no candidates",
			props: func() *interfaces.PropertyMap {
				props := interfaces.NewPropertyMap()
				props.Set("Estado", map[string]any{"select": map[string]any{"name": "Listo"}})
				return props
			},
			title: "Página abc",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			title, property := resolveTitle(interfaces.Page{ID: "abc", Properties: tc.props()})
			if title != tc.title || property != tc.property {
				t.Fatalf("resolveTitle = %q, %q; want %q, %q", title, property, tc.title, tc.property)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Plan de lanzamiento":   "plan-de-lanzamiento",
		"  Hola   Mundo  ":      "-hola-mundo-",
		"¿Qué tal? Año 2024!":   "qu-tal-ao-2024",
		"already-slugged_name":  "already-sluggedname",
		"   ":                   "-",
		"":                      "",
		"Tabs\tand\nlines":      "tabs-and-lines",
		"Hello\u00a0World":      "hello-world",
		"Hello\vWorld":          "hello-world",
		"Hello\u3000World":      "hello-world",
		"Hola\u2009\u202fMundo": "hola-mundo",
		"Hola\ufeffMundo":       "hola-mundo",
		"Línea\u2028nueva":      "lnea-nueva",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSlugifyBound(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{
		strings.Repeat("palabra ", 30),
		strings.Repeat("ñ", 100),
		"Ünïcödé & Symbols #1 — with dashes",
		strings.Repeat("x", 51),
	}
	for _, input := range inputs {
		got := Slugify(input)
		if len(got) > MaxSlugLength {
			t.Fatalf("slug %q exceeds %d bytes", got, MaxSlugLength)
		}
		if !pattern.MatchString(got) {
			t.Fatalf("slug %q contains unexpected characters", got)
		}
	}
}

func TestSluggerFor(t *testing.T) {
	if _, ok := SluggerFor("transliterate").(TransliteratingSlugger); !ok {
		t.Fatal("expected transliterating slugger")
	}
	if _, ok := SluggerFor("").(DefaultSlugger); !ok {
		t.Fatal("expected default slugger")
	}
	if got := (TransliteratingSlugger{}).Slug(strings.Repeat("word ", 40)); len(got) > MaxSlugLength {
		t.Fatalf("expected transliterated slug to be bounded, got %d bytes", len(got))
	}
}
