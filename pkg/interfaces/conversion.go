package interfaces

// Default values applied when neither the engine config nor the call supplies one.
const (
	DefaultIndentSpaces               = 2
	DefaultIncludeUnsupportedComments = true
)

// RenderOptions is the resolved option set handed to every block converter.
type RenderOptions struct {
	IndentSpaces               int
	IncludeUnsupportedComments bool
}

// DefaultRenderOptions returns the documented defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		IndentSpaces:               DefaultIndentSpaces,
		IncludeUnsupportedComments: DefaultIncludeUnsupportedComments,
	}
}

// ConversionOptions carries per-call overrides. Nil fields keep the defaults
// supplied to Resolve.
type ConversionOptions struct {
	IndentSpaces               *int  `json:"indentSpaces,omitempty"`
	IncludeUnsupportedComments *bool `json:"includeUnsupportedComments,omitempty"`
}

// Resolve merges the overrides on top of defaults. Negative indentation is
// clamped to zero.
func (o *ConversionOptions) Resolve(defaults RenderOptions) RenderOptions {
	resolved := defaults
	if o != nil {
		if o.IndentSpaces != nil {
			resolved.IndentSpaces = *o.IndentSpaces
		}
		if o.IncludeUnsupportedComments != nil {
			resolved.IncludeUnsupportedComments = *o.IncludeUnsupportedComments
		}
	}
	if resolved.IndentSpaces < 0 {
		resolved.IndentSpaces = 0
	}
	return resolved
}

// BlockConverter renders a single block (without its children) at the given
// nesting level. Returned errors and panics are contained by the renderer.
type BlockConverter func(block Block, indentLevel int, opts RenderOptions) (string, error)

// BlockConverterRegistry is the open type -> converter mapping.
type BlockConverterRegistry interface {
	Register(blockType string, converter BlockConverter)
	Lookup(blockType string) BlockConverter
	SupportedTypes() []string
}

// PropertyFormatter renders the value of a custom property kind. It receives
// the raw value stored under the kind key.
type PropertyFormatter func(raw any) (string, error)

// ConversionMetrics records conversion telemetry. Implementations must be safe
// for concurrent use.
type ConversionMetrics interface {
	IncrementBlockRendered(blockType string)
	IncrementBlockFailed(blockType string)
	IncrementPropertyFailed(property string)
	IncrementPageConverted(withBlocks bool)
}
