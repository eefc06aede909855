// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting, but delegate
// generation logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/tablegen/internal/ports/primary"
)

// GenerateAdapter is a thin adapter that translates CLI operations to
// GeneratorService calls.
type GenerateAdapter struct {
	service primary.GeneratorService
	out     io.Writer
}

// NewGenerateAdapter creates a new GenerateAdapter with the given service.
func NewGenerateAdapter(service primary.GeneratorService, out io.Writer) *GenerateAdapter {
	return &GenerateAdapter{
		service: service,
		out:     out,
	}
}

// Entity generates the entity model.
func (a *GenerateAdapter) Entity(ctx context.Context, tableID string, dryRun bool) error {
	resp, err := a.service.GenerateEntity(ctx, primary.GenerateRequest{TableID: tableID, DryRun: dryRun})
	a.report(resp)
	return err
}

// Business generates the business layer.
func (a *GenerateAdapter) Business(ctx context.Context, tableID string, dryRun bool) error {
	resp, err := a.service.GenerateBusinessLayer(ctx, primary.GenerateRequest{TableID: tableID, DryRun: dryRun})
	a.report(resp)
	return err
}

// Vue generates the Vue page.
func (a *GenerateAdapter) Vue(ctx context.Context, tableID, root string, dryRun bool) error {
	resp, err := a.service.GenerateFrontendView(ctx, primary.FrontendRequest{TableID: tableID, RootPath: root, DryRun: dryRun})
	a.report(resp)
	return err
}

// VueAPI generates the Vue API client.
func (a *GenerateAdapter) VueAPI(ctx context.Context, tableID, root string, dryRun bool) error {
	resp, err := a.service.GenerateFrontendAPIClient(ctx, primary.FrontendRequest{TableID: tableID, RootPath: root, DryRun: dryRun})
	a.report(resp)
	return err
}

// All generates every artifact.
func (a *GenerateAdapter) All(ctx context.Context, tableID, root string, dryRun bool) error {
	resp, err := a.service.GenerateAll(ctx, primary.FrontendRequest{TableID: tableID, RootPath: root, DryRun: dryRun})
	a.report(resp)
	return err
}

// report prints the artifacts of a response, which may be partial when a
// later step failed.
func (a *GenerateAdapter) report(resp *primary.GenerateResponse) {
	if resp == nil || len(resp.Artifacts) == 0 {
		return
	}

	if resp.DryRun {
		fmt.Fprintf(a.out, "\n%s Dry run, nothing written:\n", color.New(color.FgYellow).Sprint("!"))
		for _, art := range resp.Artifacts {
			fmt.Fprintf(a.out, "  %-14s %s (%d bytes)\n", art.Kind, art.Path, art.Bytes)
		}
		fmt.Fprintln(a.out)
		return
	}

	for _, art := range resp.Artifacts {
		fmt.Fprintf(a.out, "%s Generated %s: %s\n", color.New(color.FgGreen).Sprint("✓"), art.Kind, art.Path)
	}
}
