package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tablegen/internal/wire"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from a table definition",
		Long: `Generate C# backend and Vue frontend source files from a stored table definition.

Entities and business classes are refused when the solution already contains
an entity with the same class or table name.`,
	}

	cmd.AddCommand(generateEntityCmd())
	cmd.AddCommand(generateBusinessCmd())
	cmd.AddCommand(generateVueCmd())
	cmd.AddCommand(generateVueAPICmd())
	cmd.AddCommand(generateAllCmd())

	return cmd
}

func generateEntityCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "entity [table-id]",
		Short: "Generate the entity model",
		Long: `Generate the entity class into <Repository project>/Domain/<folder>/<ClassName>.cs.

Examples:
  tablegen generate entity T1
  tablegen generate entity T1 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GenerateAdapter().Entity(NewContext(), args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func generateBusinessCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "business [table-id]",
		Short: "Generate the business layer",
		Long: `Generate the business class, its query and add/update request types and the API controller.

Steps run in order and stop at the first failure. Files written by earlier
steps are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GenerateAdapter().Business(NewContext(), args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func generateVueCmd() *cobra.Command {
	var root string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "vue [table-id]",
		Short: "Generate the Vue page",
		Long: `Generate <root>/src/views/<name>s/index.vue.

Examples:
  tablegen generate vue T1 --root ../acme-web`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GenerateAdapter().Vue(NewContext(), args[0], frontendRoot(root), dryRun)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Frontend project root (defaults to frontend_root from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func generateVueAPICmd() *cobra.Command {
	var root string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "vue-api [table-id]",
		Short: "Generate the Vue API client",
		Long:  `Generate <root>/src/api/<name>s.js.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GenerateAdapter().VueAPI(NewContext(), args[0], frontendRoot(root), dryRun)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Frontend project root (defaults to frontend_root from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func generateAllCmd() *cobra.Command {
	var root string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "all [table-id]",
		Short: "Generate every artifact for a table",
		Long: `Generate the entity and the business layer, then the Vue page and API client
when a frontend root is known.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GenerateAdapter().All(NewContext(), args[0], frontendRoot(root), dryRun)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Frontend project root (defaults to frontend_root from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func frontendRoot(flag string) string {
	if flag != "" {
		return flag
	}
	return wire.Config().FrontendRoot
}
