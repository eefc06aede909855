// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/ports/secondary"
)

// ProjectLocator implements secondary.ProjectLocator by listing the
// directories directly under a solution root.
type ProjectLocator struct {
	root string
}

// NewProjectLocator creates a locator for the given solution root.
func NewProjectLocator(root string) (*ProjectLocator, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve solution root: %w", err)
	}
	return &ProjectLocator{root: abs}, nil
}

// SolutionRoot returns the absolute solution root.
func (l *ProjectLocator) SolutionRoot() string {
	return l.root
}

// FindBySuffix tries each suffix in order and returns the last matching
// directory, in name order, for the first suffix that matches anything.
// Matching ignores case.
func (l *ProjectLocator) FindBySuffix(ctx context.Context, suffixes ...string) (string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return "", fmt.Errorf("failed to list solution root: %w", err)
	}

	fold := cases.Fold()
	for _, suffix := range suffixes {
		want := fold.String(suffix)
		match := ""
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if strings.HasSuffix(fold.String(e.Name()), want) {
				match = e.Name()
			}
		}
		if match != "" {
			return filepath.Join(l.root, match), nil
		}
	}

	return "", fmt.Errorf("%w: no directory ending in %s under %s",
		metadata.ErrProjectNotFound, strings.Join(suffixes, ", "), l.root)
}

var _ secondary.ProjectLocator = (*ProjectLocator)(nil)
