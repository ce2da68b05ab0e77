package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-notionmd/internal/runtimeconfig"
)

const (
	exportPagesMessageType = "notionmd.export.pages"
	reindexMessageType     = "notionmd.export.reindex"
)

// ExportPagesCommand converts page input files and writes one markdown file
// per page into OutputDir.
type ExportPagesCommand struct {
	// Inputs lists JSON files holding a page, a {page, blocks} pair, or an array of either.
	Inputs []string `json:"inputs"`
	// OutputDir receives the generated files. It is created when missing.
	OutputDir string `json:"output_dir"`
	// Frontmatter prefixes each page file with a YAML metadata header.
	Frontmatter bool `json:"frontmatter,omitempty"`
	// GenerateIndex writes index.md after the pages.
	GenerateIndex bool `json:"generate_index,omitempty"`
	// IndentSpaces overrides the per level indentation.
	IndentSpaces *int `json:"indent_spaces,omitempty"`
	// OmitUnsupported drops the placeholder emitted for unknown block types.
	OmitUnsupported bool `json:"omit_unsupported,omitempty"`
	// DryRun converts without touching the filesystem.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ExportPagesCommand) Type() string { return exportPagesMessageType }

// Validate ensures inputs and destination are usable before handlers execute.
func (cmd ExportPagesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Inputs, validation.Required, validation.Each(validation.By(notBlank("notionmd.export.pages.input_blank", "input path is blank")))),
		validation.Field(&cmd.OutputDir, validation.By(notBlank("notionmd.export.pages.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.IndentSpaces, validation.By(func(value any) error {
			indent, _ := value.(*int)
			if indent == nil {
				return nil
			}
			if *indent < 0 || *indent > runtimeconfig.MaxIndentSpaces {
				return validation.NewError("notionmd.export.pages.indent_range", "indent spaces must be between 0 and 16")
			}
			return nil
		})),
	)
}

// ReindexCommand regenerates index.md from the files already present in OutputDir.
type ReindexCommand struct {
	OutputDir string `json:"output_dir"`
	// Pattern selects the files to index, relative to OutputDir. Defaults to every markdown file.
	Pattern string `json:"pattern,omitempty"`
	// Exclude lists patterns skipped even when Pattern matches.
	Exclude []string `json:"exclude,omitempty"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ReindexCommand) Type() string { return reindexMessageType }

// Validate ensures the export directory is present before handlers execute.
func (cmd ReindexCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputDir, validation.By(notBlank("notionmd.export.reindex.output_dir_required", "output directory is required"))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
