package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/tablegen/internal/core/artifact"
	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/core/render"
	"github.com/example/tablegen/internal/ports/secondary"
	"github.com/example/tablegen/internal/wire"
)

// TemplatesCmd returns the templates command
func TemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and export generation templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List templates and the placeholders they use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTemplates(NewContext(), wire.TemplateStore(), os.Stdout)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export [dir]",
		Short: "Write every template to a directory for customization",
		Long: `Write every template to dir. Point template_dir in tablegen.yaml at the
directory to use the edited copies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := wire.TemplateStore().Export(NewContext(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Exported %d templates to %s\n", len(written), args[0])
			return nil
		},
	})

	return cmd
}

// printTemplates lists every template with the artifact kind it renders, the
// placeholders it uses and any of those the planner never supplies.
func printTemplates(ctx context.Context, store secondary.TemplateStore, out io.Writer) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}

	kinds := make(map[string]metadata.ArtifactKind, len(metadata.AllKinds))
	for _, kind := range metadata.AllKinds {
		kinds[artifact.TemplateName(kind)] = kind
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tKIND\tPLACEHOLDERS\tUNSUPPLIED")
	fmt.Fprintln(w, "--------\t----\t------------\t----------")
	for _, name := range names {
		body, err := store.Load(ctx, name)
		if err != nil {
			return err
		}
		kind, ok := kinds[name]
		label, unsupplied := "-", "-"
		if ok {
			label = string(kind)
			unsupplied = strings.Join(render.Missing(body, artifact.Values(kind, artifact.Session{}, artifact.Input{})), ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, label, strings.Join(render.Tokens(body), ", "), unsupplied)
	}
	return w.Flush()
}
