// Package cli holds the cobra commands of the notionmd binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-notionmd/cmd/notionmd/internal/bootstrap"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// NewRootCommand assembles the notionmd command tree.
func NewRootCommand() *cobra.Command {
	opts := &bootstrap.Options{IndentSpaces: interfaces.DefaultIndentSpaces}

	root := &cobra.Command{
		Use:   "notionmd",
		Short: "Convert exported page trees into markdown documents",
		Long: `notionmd converts pages (ordered property maps plus block trees, as JSON)
into markdown files and an index linking them.

Input files hold a page object, a {"page": ..., "blocks": [...]} pair, or an
array of either.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.LogProvider, "log-provider", "console", "Logging provider: console, gologger, zerolog or none")
	flags.StringVar(&opts.LogLevel, "log-level", "error", "Minimum log level")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log format for gologger and zerolog: json, console or pretty")
	flags.BoolVar(&opts.ExtendedBlocks, "extended", false, "Enable callout, bookmark, equation and child_page converters")
	flags.StringVar(&opts.SlugStrategy, "slug", "default", "File name strategy: default or transliterate")
	flags.IntVar(&opts.IndentSpaces, "indent", interfaces.DefaultIndentSpaces, "Spaces per nesting level")
	flags.IntVar(&opts.Workers, "workers", 0, "Concurrent conversions (0 uses GOMAXPROCS)")

	root.AddCommand(
		NewConvertCommand(opts),
		NewIndexCommand(opts),
		NewPreviewCommand(opts),
		NewTypesCommand(opts),
	)
	return root
}

func buildModule(cmd *cobra.Command, opts *bootstrap.Options) (*bootstrap.Module, error) {
	resolved := *opts
	if resolved.LogWriter == nil {
		resolved.LogWriter = cmd.ErrOrStderr()
	}
	return bootstrap.BuildModule(resolved)
}
