package app

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/example/tablegen/internal/ctxutil"
	"github.com/example/tablegen/internal/ports/primary"
	"github.com/example/tablegen/internal/ports/secondary"
)

// IndexServiceImpl implements the IndexService interface.
// It populates the stored manifest from outside the generator; generation
// itself only ever reads the index.
type IndexServiceImpl struct {
	scanner  secondary.EntityScanner
	store    secondary.EntityIndexStore
	index    secondary.EntityIndex
	projects secondary.ProjectLocator
}

// NewIndexService creates a new IndexService with injected dependencies.
func NewIndexService(
	scanner secondary.EntityScanner,
	store secondary.EntityIndexStore,
	index secondary.EntityIndex,
	projects secondary.ProjectLocator,
) *IndexServiceImpl {
	return &IndexServiceImpl{
		scanner:  scanner,
		store:    store,
		index:    index,
		projects: projects,
	}
}

// Refresh rescans the solution sources and replaces the stored manifest.
func (s *IndexServiceImpl) Refresh(ctx context.Context) (*primary.RefreshResponse, error) {
	ctx, sessionID := ctxutil.EnsureSession(ctx)
	root := s.projects.SolutionRoot()

	entities, err := s.scanner.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	klog.V(1).Infof("scanned solution: session=%s, root=%s, entities=%d", sessionID, root, len(entities))

	if err := s.store.Replace(ctx, entities); err != nil {
		return nil, fmt.Errorf("failed to store entity manifest: %w", err)
	}

	return &primary.RefreshResponse{Scanned: len(entities)}, nil
}

// List returns the entities the duplicate guard would see.
func (s *IndexServiceImpl) List(ctx context.Context) ([]*primary.GeneratedEntity, error) {
	records, err := s.index.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity index: %w", err)
	}

	result := make([]*primary.GeneratedEntity, len(records))
	for i, r := range records {
		result[i] = &primary.GeneratedEntity{
			ClassName: r.ClassName,
			TableName: r.TableName,
			Source:    r.Source,
		}
	}
	return result, nil
}
