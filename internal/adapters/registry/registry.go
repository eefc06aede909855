// Package registry provides EntityIndex implementations that do not read
// sources themselves: declared entities, combinations and caches of other
// indexes.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/tablegen/internal/ports/secondary"
)

// StaticIndex serves a fixed list of entities, typically declared in config.
type StaticIndex struct {
	entities []secondary.EntityRecord
}

// NewStaticIndex creates an index over the given entities.
func NewStaticIndex(entities []secondary.EntityRecord) *StaticIndex {
	copied := make([]secondary.EntityRecord, len(entities))
	copy(copied, entities)
	return &StaticIndex{entities: copied}
}

// Snapshot returns a copy of the declared entities.
func (s *StaticIndex) Snapshot(ctx context.Context) ([]secondary.EntityRecord, error) {
	result := make([]secondary.EntityRecord, len(s.entities))
	copy(result, s.entities)
	return result, nil
}

// ScanIndex serves the entities found by scanning the solution sources on
// every snapshot.
type ScanIndex struct {
	scanner secondary.EntityScanner
	root    string
}

// NewScanIndex creates an index scanning root with scanner.
func NewScanIndex(scanner secondary.EntityScanner, root string) *ScanIndex {
	return &ScanIndex{scanner: scanner, root: root}
}

// Snapshot scans the solution.
func (s *ScanIndex) Snapshot(ctx context.Context) ([]secondary.EntityRecord, error) {
	return s.scanner.Scan(ctx, s.root)
}

// CompositeIndex concatenates the snapshots of several indexes in order.
type CompositeIndex struct {
	indexes []secondary.EntityIndex
}

// NewCompositeIndex creates an index combining the given indexes.
func NewCompositeIndex(indexes ...secondary.EntityIndex) *CompositeIndex {
	return &CompositeIndex{indexes: indexes}
}

// Snapshot queries every index and fails on the first error.
func (c *CompositeIndex) Snapshot(ctx context.Context) ([]secondary.EntityRecord, error) {
	var all []secondary.EntityRecord
	for i, idx := range c.indexes {
		entities, err := idx.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		all = append(all, entities...)
	}
	return all, nil
}

// CachedIndex takes the snapshot of its inner index once and serves it for
// the rest of the process. Entities written after that are not seen.
type CachedIndex struct {
	inner secondary.EntityIndex

	mu       sync.Mutex
	loaded   bool
	entities []secondary.EntityRecord
}

// NewCachedIndex wraps inner with a load-once cache.
func NewCachedIndex(inner secondary.EntityIndex) *CachedIndex {
	return &CachedIndex{inner: inner}
}

// Snapshot returns the cached snapshot, loading it on first use. A failed
// load is not cached.
func (c *CachedIndex) Snapshot(ctx context.Context) ([]secondary.EntityRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		entities, err := c.inner.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		c.entities = entities
		c.loaded = true
	}

	result := make([]secondary.EntityRecord, len(c.entities))
	copy(result, c.entities)
	return result, nil
}

var (
	_ secondary.EntityIndex = (*StaticIndex)(nil)
	_ secondary.EntityIndex = (*ScanIndex)(nil)
	_ secondary.EntityIndex = (*CompositeIndex)(nil)
	_ secondary.EntityIndex = (*CachedIndex)(nil)
)
