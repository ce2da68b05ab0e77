package interfaces

// MarkdownParser converts generated markdown into HTML for previews.
type MarkdownParser interface {
	// Parse converts markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises preview rendering. Option names stay readable for
// configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Sanitize   bool     `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	HardWraps  bool     `json:"hardWraps,omitempty" yaml:"hard_wraps,omitempty"`
	SafeMode   bool     `json:"safeMode,omitempty" yaml:"safe_mode,omitempty"`
}

// ExportedFile is a markdown file read back from an export directory. Meta is
// decoded from the YAML frontmatter block written during export.
type ExportedFile struct {
	Path string
	Meta Metadata
	Body []byte
}
