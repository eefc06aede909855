package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tablegen/internal/wire"
)

// IndexCmd returns the index command
func IndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect the generated-entity index",
		Long: `The index lists the entities already present in the solution. Generation
refuses entities and business classes that collide with it.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Rescan the solution and rewrite the stored manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.IndexAdapter().Refresh(NewContext())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the entities the duplicate check sees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.IndexAdapter().List(NewContext())
		},
	})

	return cmd
}
