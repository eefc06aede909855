package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/ports/secondary"
	"github.com/example/tablegen/internal/templates"
)

// TemplateStore implements secondary.TemplateStore. Bodies in the override
// directory take precedence over the embedded defaults.
type TemplateStore struct {
	dir string
}

// NewTemplateStore creates a store reading overrides from dir. An empty dir
// serves only the embedded templates.
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Load returns the body of the named template.
func (s *TemplateStore) Load(ctx context.Context, name string) (string, error) {
	if s.dir != "" {
		content, err := os.ReadFile(filepath.Join(s.dir, name+templates.Ext))
		if err == nil {
			return string(content), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}

	body, err := templates.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", metadata.ErrTemplateNotFound, name)
	}
	return body, nil
}

// List returns the names of the embedded templates plus any extra templates
// found in the override directory, sorted.
func (s *TemplateStore) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, name := range templates.Names() {
		seen[name] = true
	}

	if s.dir != "" {
		entries, err := os.ReadDir(s.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to list template directory: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), templates.Ext) {
				seen[strings.TrimSuffix(e.Name(), templates.Ext)] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Export writes every template the store serves into dir, so they can be
// edited and used as overrides.
func (s *TemplateStore) Export(ctx context.Context, dir string) ([]string, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	for _, name := range names {
		body, err := s.Load(ctx, name)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, name+templates.Ext)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return written, fmt.Errorf("%w: %v", metadata.ErrFileWrite, err)
		}
		written = append(written, path)
	}
	return written, nil
}

var _ secondary.TemplateStore = (*TemplateStore)(nil)
