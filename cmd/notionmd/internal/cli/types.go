package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notionmd/cmd/notionmd/internal/bootstrap"
)

// NewTypesCommand creates the types command.
func NewTypesCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the block types with a registered converter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := buildModule(cmd, opts)
			if err != nil {
				return err
			}
			for _, typ := range module.Engine.SupportedBlockTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), typ)
			}
			return nil
		},
	}
}
