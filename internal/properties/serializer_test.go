package properties

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

type recordingLogger struct {
	errors []string
}

func (r *recordingLogger) Trace(string, ...any)                          {}
func (r *recordingLogger) Debug(string, ...any)                          {}
func (r *recordingLogger) Info(string, ...any)                           {}
func (r *recordingLogger) Warn(string, ...any)                           {}
func (r *recordingLogger) Error(msg string, _ ...any)                    { r.errors = append(r.errors, msg) }
func (r *recordingLogger) Fatal(string, ...any)                          {}
func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func spans(text string) []any {
	return []any{map[string]any{"plain_text": text}}
}

func TestFormatValueByKind(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil value", nil, ValueUnavailable},
		{"title", map[string]any{"title": spans("Roadmap")}, "Roadmap"},
		{"title nil", map[string]any{"title": nil}, ValueUnavailable},
		{"rich_text", map[string]any{"rich_text": []any{map[string]any{"text": map[string]any{"content": "Notes"}}}}, "Notes"},
		{"rich_text empty", map[string]any{"rich_text": []any{}}, ""},
		{"select", map[string]any{"select": map[string]any{"name": "Alta"}}, "Alta"},
		{"select without name", map[string]any{"select": map[string]any{"color": "red"}}, NoSelection},
		{"select nil", map[string]any{"select": nil}, UnsupportedKind},
		{"multi_select", map[string]any{"multi_select": []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}}, "a, b"},
		{"multi_select empty", map[string]any{"multi_select": []any{}}, NoSelections},
		{"number", map[string]any{"number": 42.5}, "42.5"},
		{"number zero", map[string]any{"number": float64(0)}, "0"},
		{"number int", map[string]any{"number": 7}, "7"},
		{"number nil", map[string]any{"number": nil}, ValueUnavailable},
		{"checkbox true", map[string]any{"checkbox": true}, "✅ Sí"},
		{"checkbox false", map[string]any{"checkbox": false}, "❌ No"},
		{"date", map[string]any{"date": map[string]any{"start": "2024-01-02"}}, "2024-01-02"},
		{"date without start", map[string]any{"date": map[string]any{"end": "2024-01-03"}}, DateUnavailable},
		{"date nil", map[string]any{"date": nil}, DateUnavailable},
		{"url", map[string]any{"url": "https://example.com"}, "[https://example.com](https://example.com)"},
		{"email", map[string]any{"email": "a@b.co"}, "[a@b.co](mailto:a@b.co)"},
		{"phone", map[string]any{"phone_number": "+34 600"}, "+34 600"},
		{"url nil", map[string]any{"url": nil}, ValueUnavailable},
		{"unknown", map[string]any{"relation": []any{}}, UnsupportedKind},
		{"not an object", "plain", UnsupportedKind},
	}

	serializer := NewSerializer()
	for _, tc := range cases {
		if got := serializer.FormatValue(tc.name, tc.value); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestSerializePropertyFragment(t *testing.T) {
	got := NewSerializer().SerializeProperty("Prioridad", map[string]any{"select": map[string]any{"name": "Alta"}})
	if got != "### Prioridad\nAlta\n\n" {
		t.Fatalf("unexpected fragment %q", got)
	}
}

func TestSerializePropertiesKeepsOrderAndExcludes(t *testing.T) {
	props := interfaces.NewPropertyMap()
	props.Set("Name", map[string]any{"title": spans("Ignored")})
	props.Set("Zeta", map[string]any{"number": 1.0})
	props.Set("Alpha", map[string]any{"checkbox": true})

	got := NewSerializer().SerializeProperties(props, "Name")
	want := "### Zeta\n1\n\n### Alpha\n✅ Sí\n\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSerializePropertiesIsolatesFailures(t *testing.T) {
	logger := &recordingLogger{}
	serializer := NewSerializer(WithLogger(logger))
	serializer.Register("formula", func(any) (string, error) {
		panic("formula exploded")
	})

	props := interfaces.NewPropertyMap()
	props.Set("Broken number", map[string]any{"number": "NaN"})
	props.Set("Formula", map[string]any{"formula": map[string]any{}})
	props.Set("Ok", map[string]any{"phone_number": "123"})

	got := serializer.SerializeProperties(props)
	want := "### Broken number\n" + ValueFailed + "\n\n" +
		"### Formula\n" + ValueFailed + "\n\n" +
		"### Ok\n123\n\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len(logger.errors) != 2 {
		t.Fatalf("expected two logged failures, got %v", logger.errors)
	}
}

func TestSerializePropertiesNilMap(t *testing.T) {
	if got := NewSerializer().SerializeProperties(nil); got != PropertiesFailed {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRegisterCustomKind(t *testing.T) {
	serializer := NewSerializer()
	serializer.Register("status", func(raw any) (string, error) {
		status, ok := raw.(map[string]any)
		if !ok {
			return "", errors.New("bad status")
		}
		name, _ := status["name"].(string)
		return "**" + name + "**", nil
	})
	serializer.Register("number", func(any) (string, error) {
		return "custom", nil
	})

	if got := serializer.FormatValue("Estado", map[string]any{"status": map[string]any{"name": "Hecho"}}); got != "**Hecho**" {
		t.Fatalf("unexpected custom output %q", got)
	}
	if got := serializer.FormatValue("Estado", map[string]any{"status": "flat"}); got != ValueFailed {
		t.Fatalf("expected custom error to be contained, got %q", got)
	}
	if got := serializer.FormatValue("N", map[string]any{"number": 3.0}); got != "3" {
		t.Fatalf("expected built-in kinds to keep precedence, got %q", got)
	}
}
