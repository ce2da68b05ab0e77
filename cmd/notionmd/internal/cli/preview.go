package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notionmd/cmd/notionmd/internal/bootstrap"
	exportcmd "github.com/goliatone/go-notionmd/internal/commands/export"
	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		asMarkdown bool
		safe       bool
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render a page JSON file or an exported markdown file",
		Long: `Preview prints the HTML rendering of a document. JSON inputs are converted
first; markdown inputs are rendered as they are, front matter excluded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local := *opts
			local.SafePreview = safe
			module, err := buildModule(cmd, &local)
			if err != nil {
				return err
			}

			docs, err := loadPreviewDocuments(module, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, doc := range docs {
				if asMarkdown {
					fmt.Fprint(out, doc.Content)
					continue
				}
				html, err := module.Engine.PreviewHTML(doc)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(html))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print markdown instead of HTML")
	cmd.Flags().BoolVar(&safe, "safe", false, "Omit raw HTML such as toggle markup")
	return cmd
}

func loadPreviewDocuments(module *bootstrap.Module, path string) ([]interfaces.ConvertedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".md") {
		return []interfaces.ConvertedDocument{{Filename: filepath.Base(path), Content: string(data)}}, nil
	}

	records, err := exportcmd.DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	docs := make([]interfaces.ConvertedDocument, 0, len(records))
	for _, record := range records {
		if record.HasBlocks {
			docs = append(docs, module.Engine.ConvertPageWithBlocks(record.Page, record.Blocks, nil))
			continue
		}
		docs = append(docs, module.Engine.ConvertPage(record.Page, nil))
	}
	return docs, nil
}
