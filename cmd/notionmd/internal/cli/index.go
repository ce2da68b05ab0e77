package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notionmd/cmd/notionmd/internal/bootstrap"
	exportcmd "github.com/goliatone/go-notionmd/internal/commands/export"
)

// NewIndexCommand creates the index command.
func NewIndexCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		pattern string
		exclude []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "index <export-dir>",
		Short: "Regenerate index.md from an export directory",
		Long: `Index reads the YAML front matter of previously exported files (see
convert --frontmatter) and rewrites index.md. Files without a page id are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := buildModule(cmd, opts)
			if err != nil {
				return err
			}

			var result exportcmd.ReindexResult
			set, err := exportcmd.RegisterExportCommands(nil, module.Engine, module.Provider,
				exportcmd.WithReindexObserver(func(r exportcmd.ReindexResult) { result = r }),
			)
			if err != nil {
				return err
			}
			if err := set.Reindex.Execute(cmd.Context(), exportcmd.ReindexCommand{
				OutputDir: args[0],
				Pattern:   pattern,
				Exclude:   exclude,
				DryRun:    dryRun,
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d page(s) into %s\n", result.Pages, result.Index)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Doublestar pattern relative to the export directory (default **/*.md)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Patterns to skip")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the index without writing it")
	return cmd
}
