package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/tablegen/internal/ports/primary"
)

// IndexAdapter translates CLI operations to IndexService calls.
type IndexAdapter struct {
	service primary.IndexService
	out     io.Writer
}

// NewIndexAdapter creates a new IndexAdapter with the given service.
func NewIndexAdapter(service primary.IndexService, out io.Writer) *IndexAdapter {
	return &IndexAdapter{
		service: service,
		out:     out,
	}
}

// Refresh rescans the solution.
func (a *IndexAdapter) Refresh(ctx context.Context) error {
	resp, err := a.service.Refresh(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Indexed %d entities\n", color.New(color.FgGreen).Sprint("✓"), resp.Scanned)
	return nil
}

// List prints the entities the duplicate guard checks against.
func (a *IndexAdapter) List(ctx context.Context) error {
	entities, err := a.service.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}

	if len(entities) == 0 {
		fmt.Fprintln(a.out, "No entities indexed")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-30s %-30s %s\n", "CLASS", "TABLE", "SOURCE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entities {
		table := e.TableName
		if table == "" {
			table = "-"
		}
		fmt.Fprintf(a.out, "%-30s %-30s %s\n", e.ClassName, table, e.Source)
	}
	fmt.Fprintln(a.out)

	return nil
}
