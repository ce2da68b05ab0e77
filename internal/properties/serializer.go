package properties

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/metrics"
	"github.com/goliatone/go-notionmd/internal/richtext"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Fallback texts emitted in place of property values.
const (
	ValueUnavailable   = "*Valor no disponible*"
	NoSelection        = "*Sin selección*"
	NoSelections       = "*Sin selecciones*"
	DateUnavailable    = "*Fecha no disponible*"
	UnsupportedKind    = "*Tipo de propiedad no soportado*"
	ValueFailed        = "*Error al procesar el valor*"
	PropertiesFailed   = "*Error al procesar las propiedades de la página*\n\n"
	checkboxChecked    = "✅ Sí"
	checkboxNotChecked = "❌ No"
)

// ErrUnexpectedValue reports a property payload whose shape does not match its kind.
var ErrUnexpectedValue = errors.New("properties: unexpected value shape")

// Serializer renders page properties as markdown fragments. Custom kinds can
// be registered and are consulted after the built-in kinds.
type Serializer struct {
	mu         sync.RWMutex
	formatters map[string]interfaces.PropertyFormatter
	order      []string
	logger     interfaces.Logger
	metrics    interfaces.ConversionMetrics
}

// Option configures the serializer.
type Option func(*Serializer)

// WithLogger attaches the logger used to report contained failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the recorder used for property failure counts.
func WithMetrics(recorder interfaces.ConversionMetrics) Option {
	return func(s *Serializer) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// NewSerializer constructs a serializer with the built-in kinds.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{
		formatters: make(map[string]interfaces.PropertyFormatter),
		logger:     logging.NoOp(),
		metrics:    metrics.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds or replaces a formatter for a custom value kind. Built-in
// kinds keep precedence.
func (s *Serializer) Register(kind string, formatter interfaces.PropertyFormatter) {
	kind = strings.TrimSpace(kind)
	if kind == "" || formatter == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.formatters[kind]; !exists {
		s.order = append(s.order, kind)
	}
	s.formatters[kind] = formatter
}

// SerializeProperty renders a single "### name" fragment.
func (s *Serializer) SerializeProperty(name string, value any) string {
	return "### " + name + "\n" + s.FormatValue(name, value) + "\n\n"
}

// SerializeProperties renders every property in declaration order, skipping
// the excluded names. A nil map collapses to a single error line.
func (s *Serializer) SerializeProperties(props *interfaces.PropertyMap, exclude ...string) string {
	if props == nil {
		s.logger.Error("properties.serialize.unreadable")
		return PropertiesFailed
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	var b strings.Builder
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		if _, excluded := skip[pair.Key]; excluded {
			continue
		}
		b.WriteString(s.SerializeProperty(pair.Key, pair.Value))
	}
	return b.String()
}

// FormatValue renders a property value, folding failures into ValueFailed.
func (s *Serializer) FormatValue(name string, value any) (out string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out = s.fail(name, fmt.Errorf("property formatter panic: %v", recovered))
		}
	}()

	formatted, err := s.format(value)
	if err != nil {
		return s.fail(name, err)
	}
	return formatted
}

func (s *Serializer) fail(name string, err error) string {
	s.logger.Error("properties.serialize.failed", logging.FieldProperty, name, logging.FieldError, err)
	s.metrics.IncrementPropertyFailed(name)
	return ValueFailed
}

func (s *Serializer) format(value any) (string, error) {
	if value == nil {
		return ValueUnavailable, nil
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return UnsupportedKind, nil
	}

	for _, kind := range []string{"title", "rich_text"} {
		if raw, ok := fields[kind]; ok {
			if raw == nil {
				return ValueUnavailable, nil
			}
			return richtext.Extract(raw), nil
		}
	}

	if raw, ok := fields["select"]; ok {
		return formatSelect(raw)
	}
	if raw, ok := fields["multi_select"]; ok {
		return formatMultiSelect(raw)
	}
	if raw, ok := fields["number"]; ok {
		return formatNumber(raw)
	}
	if raw, ok := fields["checkbox"]; ok {
		if checked, _ := raw.(bool); checked {
			return checkboxChecked, nil
		}
		return checkboxNotChecked, nil
	}
	if raw, ok := fields["date"]; ok {
		return formatDate(raw)
	}
	if raw, ok := fields["url"]; ok {
		return formatLink(raw, "")
	}
	if raw, ok := fields["email"]; ok {
		return formatLink(raw, "mailto:")
	}
	if raw, ok := fields["phone_number"]; ok {
		return formatString(raw)
	}

	if formatted, handled, err := s.formatCustom(fields); handled {
		return formatted, err
	}
	return UnsupportedKind, nil
}

func (s *Serializer) formatCustom(fields map[string]any) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, kind := range s.order {
		if raw, ok := fields[kind]; ok {
			formatted, err := s.formatters[kind](raw)
			return formatted, true, err
		}
	}
	return "", false, nil
}

func formatSelect(raw any) (string, error) {
	if raw == nil {
		return UnsupportedKind, nil
	}
	option, ok := raw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: select is %T", ErrUnexpectedValue, raw)
	}
	name, _ := option["name"].(string)
	if name == "" {
		return NoSelection, nil
	}
	return name, nil
}

func formatMultiSelect(raw any) (string, error) {
	if raw == nil {
		return NoSelections, nil
	}
	options, ok := raw.([]any)
	if !ok {
		return "", fmt.Errorf("%w: multi_select is %T", ErrUnexpectedValue, raw)
	}
	names := make([]string, 0, len(options))
	for _, item := range options {
		option, ok := item.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: multi_select option is %T", ErrUnexpectedValue, item)
		}
		name, _ := option["name"].(string)
		names = append(names, name)
	}
	if len(names) == 0 {
		return NoSelections, nil
	}
	return strings.Join(names, ", "), nil
}

func formatNumber(raw any) (string, error) {
	switch n := raw.(type) {
	case nil:
		return ValueUnavailable, nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case json.Number:
		return n.String(), nil
	default:
		return "", fmt.Errorf("%w: number is %T", ErrUnexpectedValue, raw)
	}
}

func formatDate(raw any) (string, error) {
	if raw == nil {
		return DateUnavailable, nil
	}
	date, ok := raw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: date is %T", ErrUnexpectedValue, raw)
	}
	start, _ := date["start"].(string)
	if start == "" {
		return DateUnavailable, nil
	}
	return start, nil
}

func formatLink(raw any, scheme string) (string, error) {
	value, err := formatString(raw)
	if err != nil || value == ValueUnavailable {
		return value, err
	}
	return "[" + value + "](" + scheme + value + ")", nil
}

func formatString(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return ValueUnavailable, nil
	case string:
		if v == "" {
			return ValueUnavailable, nil
		}
		return v, nil
	default:
		return "", fmt.Errorf("%w: expected string, got %T", ErrUnexpectedValue, raw)
	}
}
