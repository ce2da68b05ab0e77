package blocks

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// Registry maps block type names to converters. Unregistered types resolve to
// the unsupported-block fallback.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]interfaces.BlockConverter
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]interfaces.BlockConverter),
	}
}

// NewDefaultRegistry returns a registry seeded with the built-in converters,
// plus the extended set when requested.
func NewDefaultRegistry(extended bool) *Registry {
	r := NewRegistry()
	r.RegisterAll(BuiltInConverters())
	if extended {
		r.RegisterAll(ExtendedConverters())
	}
	return r
}

// Register inserts or overwrites the converter for blockType. The last
// registration wins. Blank types and nil converters are ignored.
func (r *Registry) Register(blockType string, converter interfaces.BlockConverter) {
	_ = r.RegisterChecked(blockType, converter)
}

// RegisterChecked behaves like Register but reports why a registration was rejected.
func (r *Registry) RegisterChecked(blockType string, converter interfaces.BlockConverter) error {
	if r == nil {
		return ErrBlankType
	}
	name := strings.TrimSpace(blockType)
	if name == "" {
		return ErrBlankType
	}
	if converter == nil {
		return ErrNilConverter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.converters == nil {
		r.converters = make(map[string]interfaces.BlockConverter)
	}
	r.converters[name] = converter
	return nil
}

// RegisterAll registers every entry of the supplied catalogue.
func (r *Registry) RegisterAll(converters map[string]interfaces.BlockConverter) {
	for name, converter := range converters {
		r.Register(name, converter)
	}
}

// Get returns the converter registered for blockType, if any.
func (r *Registry) Get(blockType string) (interfaces.BlockConverter, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	converter, ok := r.converters[blockType]
	return converter, ok
}

// Lookup returns the registered converter or the unsupported-block fallback.
func (r *Registry) Lookup(blockType string) interfaces.BlockConverter {
	if converter, ok := r.Get(blockType); ok {
		return converter
	}
	return convertUnsupported
}

// SupportedTypes returns every registered type name in sorted order.
func (r *Registry) SupportedTypes() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.converters))
	for name := range r.converters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var _ interfaces.BlockConverterRegistry = (*Registry)(nil)
