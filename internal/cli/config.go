package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tablegen/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults and environment expansion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := wire.Config().Marshal()
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	})

	return cmd
}
