package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notionmd/cmd/notionmd/internal/bootstrap"
	exportcmd "github.com/goliatone/go-notionmd/internal/commands/export"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		outputDir       string
		frontmatter     bool
		noIndex         bool
		dryRun          bool
		omitUnsupported bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>...",
		Short: "Convert page JSON files into markdown",
		Long: `Convert reads each input (file path or doublestar pattern), converts every
page it holds and writes one markdown file per page into the output
directory, followed by index.md.`,
		Example: `  notionmd convert pages/*.json --out export
  notionmd convert 'dump/**/*.json' --frontmatter --slug transliterate`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(args)
			if err != nil {
				return err
			}
			module, err := buildModule(cmd, opts)
			if err != nil {
				return err
			}

			var result exportcmd.ExportResult
			set, err := exportcmd.RegisterExportCommands(nil, module.Engine, module.Provider,
				exportcmd.WithExportObserver(func(r exportcmd.ExportResult) { result = r }),
			)
			if err != nil {
				return err
			}

			msg := exportcmd.ExportPagesCommand{
				Inputs:          inputs,
				OutputDir:       outputDir,
				Frontmatter:     frontmatter,
				GenerateIndex:   !noIndex,
				OmitUnsupported: omitUnsupported,
				DryRun:          dryRun,
			}
			if err := set.Export.Execute(cmd.Context(), msg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Wrote"
			if dryRun {
				verb = "Would write"
			}
			fmt.Fprintf(out, "%s %d page(s) to %s\n", verb, len(result.Files), result.OutputDir)
			for _, file := range result.Files {
				fmt.Fprintf(out, "  %s\n", file)
			}
			if result.Index != "" {
				fmt.Fprintf(out, "Index: %s\n", result.Index)
			}
			for _, dup := range result.Duplicates {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s was produced by more than one page\n", dup)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "export", "Output directory")
	cmd.Flags().BoolVar(&frontmatter, "frontmatter", false, "Prefix each page with a YAML metadata header")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "Skip index.md")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert without writing files")
	cmd.Flags().BoolVar(&omitUnsupported, "omit-unsupported", false, "Drop placeholders for unknown block types")
	return cmd
}
